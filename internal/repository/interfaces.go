package repository

import (
	"context"

	"storecounter/internal/model"
)

// HistoryRepository is the append-only log of counting requests.
// Implementations assign ids and timestamps and serialize appends themselves.
type HistoryRepository interface {
	// Append persists a new record and returns it with its assigned id and timestamp.
	Append(ctx context.Context, filename string, count int, annotatedPath string) (*model.HistoryRecord, error)

	// ListAll returns every record in insertion order (ascending id).
	ListAll(ctx context.Context) ([]model.HistoryRecord, error)
}
