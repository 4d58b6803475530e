package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"storecounter/internal/logger"
	"storecounter/internal/repository"
	"storecounter/internal/service/report"
)

// ReportGenerator renders the whole history into a report file.
type ReportGenerator interface {
	GenerateFromStore(ctx context.Context, encoding report.Encoding, history repository.HistoryRepository) (string, error)
}

// ReportHandler serves GET /report/{type} with type "pdf" or "excel" as an attachment.
func ReportHandler(generator ReportGenerator, history repository.HistoryRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encoding, err := report.ParseEncoding(r.PathValue("type"))
		if err != nil {
			logger.Warning("Report request rejected: %v", err)
			writeError(w, logger, err)
			return
		}

		path, err := generator.GenerateFromStore(r.Context(), encoding, history)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", encoding.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
		http.ServeFile(w, r, path)
	}
}
