package dto

import (
	"storecounter/internal/model"
	"storecounter/internal/service/storage"
)

// NewHistoryItem converts a stored record, turning its result path into a public URL.
func NewHistoryItem(rec model.HistoryRecord) HistoryItem {
	return HistoryItem{
		ID:        rec.ID,
		Timestamp: rec.Timestamp.UTC().Format(model.TimestampLayout),
		Filename:  rec.SourceFilename,
		Count:     rec.Count,
		ResultURL: storage.ResultURL(rec.AnnotatedImagePath),
	}
}
