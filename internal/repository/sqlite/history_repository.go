package sqlite

import (
	"context"
	"fmt"
	"time"

	"storecounter/internal/apperror"
	"storecounter/internal/model"
)

// HistoryRepository implements repository.HistoryRepository for SQLite.
type HistoryRepository struct {
	db  *DB
	now func() time.Time
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// Append inserts a record. The write lock makes id order match real append order.
func (r *HistoryRepository) Append(ctx context.Context, filename string, count int, annotatedPath string) (*model.HistoryRecord, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative count %d for %s", count, filename)
	}

	r.db.Lock()
	defer r.db.Unlock()

	timestamp := r.now().UTC()

	result, err := r.db.Conn().ExecContext(ctx, `
		INSERT INTO requests (timestamp, filename, count, result_path)
		VALUES (?, ?, ?, ?)
	`, timestamp, filename, count, annotatedPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert record: %v", apperror.ErrStoreUnavailable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get last insert id: %v", apperror.ErrStoreUnavailable, err)
	}

	return &model.HistoryRecord{
		ID:                 id,
		Timestamp:          timestamp,
		SourceFilename:     filename,
		Count:              count,
		AnnotatedImagePath: annotatedPath,
	}, nil
}

// ListAll retrieves all records ordered by id.
func (r *HistoryRepository) ListAll(ctx context.Context) ([]model.HistoryRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().QueryContext(ctx, `
		SELECT id, timestamp, filename, count, result_path
		FROM requests ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query records: %v", apperror.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	records := []model.HistoryRecord{}
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.SourceFilename, &rec.Count, &rec.AnnotatedImagePath); err != nil {
			return nil, fmt.Errorf("%w: failed to scan record: %v", apperror.ErrStoreUnavailable, err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate records: %v", apperror.ErrStoreUnavailable, err)
	}

	return records, nil
}
