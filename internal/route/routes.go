package route

import (
	"net/http"
	"os"
	"path/filepath"

	"storecounter/internal/config"
	"storecounter/internal/handler"
	"storecounter/internal/logger"
	"storecounter/internal/middleware"
	"storecounter/internal/repository"
	"storecounter/internal/service/metrics"
	"storecounter/internal/service/pipeline"
	"storecounter/internal/service/report"
	"storecounter/internal/service/storage"
	"storecounter/internal/service/websocket"
)

// Dependencies groups everything the HTTP surface needs.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Files     *storage.FileStore
	History   repository.HistoryRepository
	Pipeline  *pipeline.Pipeline
	Generator *report.Generator
	Hub       *websocket.HubService
	Metrics   *metrics.Metrics
}

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers the counting, report, history and log endpoints,
// static file serving, and wraps the mux with request logging.
func SetupRoutes(deps Dependencies) http.Handler {
	mux := http.NewServeMux()
	log := deps.Logger

	// Static files; results and uploads may live outside ./static
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.Handle("/static/results/", http.StripPrefix("/static/results/", http.FileServer(http.Dir(deps.Files.ResultDir()))))
	mux.Handle("/static/uploads/", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(deps.Files.UploadDir()))))

	// Counting and reports
	mux.HandleFunc("POST /process", handler.ProcessHandler(deps.Config, deps.Files, deps.Pipeline, deps.Hub, log))
	mux.HandleFunc("GET /report/{type}", handler.ReportHandler(deps.Generator, deps.History, log))

	// API endpoints
	mux.HandleFunc("GET /api/history", handler.HistoryHandler(deps.History, log))
	mux.HandleFunc("/api/live", handler.LiveWebsocketHandler(deps.Hub, log))
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	// Log endpoints
	mux.HandleFunc("GET /logs/info", handler.ShowLogsHandler(log, logger.InfoFile))
	mux.HandleFunc("GET /logs/warning", handler.ShowLogsHandler(log, logger.WarningFile))
	mux.HandleFunc("GET /logs/error", handler.ShowLogsHandler(log, logger.ErrorFile))

	mux.HandleFunc("/logs/info/clear", handler.ClearLogsHandler(log, logger.InfoFile))
	mux.HandleFunc("/logs/warning/clear", handler.ClearLogsHandler(log, logger.WarningFile))
	mux.HandleFunc("/logs/error/clear", handler.ClearLogsHandler(log, logger.ErrorFile))

	// Automatic HTML handler mapping for example: /history -> /static/history.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	return middleware.LoggingMiddleware(log, mux)
}
