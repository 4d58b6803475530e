package handler

import (
	"net/http"

	"storecounter/internal/dto"
	"storecounter/internal/logger"
	"storecounter/internal/repository"
)

// HistoryHandler returns every stored record in insertion order.
func HistoryHandler(history repository.HistoryRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := history.ListAll(r.Context())
		if err != nil {
			logger.Error("Error reading history: %v", err)
			writeError(w, logger, err)
			return
		}

		items := make([]dto.HistoryItem, 0, len(records))
		total := 0
		for _, rec := range records {
			items = append(items, dto.NewHistoryItem(rec))
			total += rec.Count
		}

		writeJSON(w, logger, http.StatusOK, dto.HistoryData{
			Records: items,
			Length:  len(items),
			Total:   total,
		})
	}
}
