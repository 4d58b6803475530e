package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"storecounter/internal/config"
	"storecounter/internal/logger"
	"storecounter/internal/repository/sqlite"
	"storecounter/internal/route"
	"storecounter/internal/service/ai"
	"storecounter/internal/service/metrics"
	"storecounter/internal/service/pipeline"
	"storecounter/internal/service/report"
	"storecounter/internal/service/storage"
	"storecounter/internal/service/video"
	"storecounter/internal/service/websocket"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	history   *sqlite.HistoryRepository
	files     *storage.FileStore
	detector  *ai.DetectorService
	pipeline  *pipeline.Pipeline
	generator *report.Generator
	hub       *websocket.HubService
	metrics   *metrics.Metrics
}

// NewApp loads the configuration and wires the full HTTP service.
func NewApp() (*App, error) {
	cfg := config.Load()
	return New(cfg, logger.NewLogger(cfg), true)
}

// New wires the store, file layout, report generator and, when withDetector
// is set, the detection network and counting pipeline. The App owns log:
// it is closed by Close, or before New returns an error.
func New(cfg *config.Config, log *logger.Logger, withDetector bool) (*App, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	fail := func(format string, err error) (*App, error) {
		db.Close()
		log.Close()
		return nil, fmt.Errorf(format, err)
	}

	files, err := storage.NewFileStore(cfg)
	if err != nil {
		return fail("failed to prepare directories: %w", err)
	}

	m, err := metrics.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return fail("failed to register metrics: %w", err)
	}

	a := &App{
		config:    cfg,
		logger:    log,
		db:        db,
		history:   sqlite.NewHistoryRepository(db),
		files:     files,
		generator: report.NewGenerator(files, cfg.ReportFontPath, log, m),
		hub:       websocket.NewHubService(log),
		metrics:   m,
	}

	if withDetector {
		detector, err := ai.NewDetectorService(cfg, log)
		if err != nil {
			return fail("failed to load detection model: %w", err)
		}
		a.detector = detector
		a.pipeline = pipeline.NewPipeline(detector, video.NewExtractor(), ai.NewAnnotator(), files, a.history, cfg.TargetClass, log, m)
	}

	return a, nil
}

func (a *App) Pipeline() *pipeline.Pipeline { return a.pipeline }

func (a *App) History() *sqlite.HistoryRepository { return a.history }

func (a *App) Generator() *report.Generator { return a.generator }

// Run serves HTTP until SIGINT/SIGTERM and then shuts down gracefully.
func (a *App) Run() error {
	if a.pipeline == nil {
		return errors.New("app was created without a detector")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.hub.Run(ctx)

	router := route.SetupRoutes(route.Dependencies{
		Config:    a.config,
		Logger:    a.logger,
		Files:     a.files,
		History:   a.history,
		Pipeline:  a.pipeline,
		Generator: a.generator,
		Hub:       a.hub,
		Metrics:   a.metrics,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🚀 Store Visitor Counter\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🗄️  History: %s\n", a.config.DatabasePath)
	fmt.Printf("📁 Results: %s\n", a.config.ResultDirectory)
	fmt.Printf("🤖 AI Model: %s (counting %q)\n", a.config.ModelPath, a.config.TargetClass)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// Close releases the detector, the store and the log files.
func (a *App) Close() error {
	var errs []error
	if a.detector != nil {
		errs = append(errs, a.detector.Close())
	}
	errs = append(errs, a.db.Close())
	errs = append(errs, a.logger.Close())
	return errors.Join(errs...)
}
