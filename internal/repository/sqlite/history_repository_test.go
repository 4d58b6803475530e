package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storecounter/internal/apperror"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "history.db")
	db, err := New(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })

	return db
}

func TestDatabase_Connection(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "test.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestDatabase_SchemaColumnOrder(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.Conn().Query(`PRAGMA table_info(requests)`)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue interface{}
			pk        int
		)
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk))
		columns = append(columns, name)
	}

	assert.Equal(t, []string{"id", "timestamp", "filename", "count", "result_path"}, columns)
}

func TestHistoryRepository_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("MSK", 3*60*60))
	repo.now = func() time.Time { return fixed }

	rec, err := repo.Append(context.Background(), "photo.jpg", 3, "static/results/result_photo.jpg")
	require.NoError(t, err)

	assert.Positive(t, rec.ID)
	assert.Equal(t, "photo.jpg", rec.SourceFilename)
	assert.Equal(t, 3, rec.Count)
	assert.Equal(t, "static/results/result_photo.jpg", rec.AnnotatedImagePath)
	assert.True(t, rec.Timestamp.Equal(fixed))
	assert.Equal(t, time.UTC, rec.Timestamp.Location())
}

func TestHistoryRepository_AppendRejectsNegativeCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)

	_, err := repo.Append(context.Background(), "photo.jpg", -1, "x")
	require.Error(t, err)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepository_ListAllInAppendOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	const n = 25
	for i := 0; i < n; i++ {
		_, err := repo.Append(ctx, fmt.Sprintf("frame_%02d.jpg", i), i%4, fmt.Sprintf("result_%02d.jpg", i))
		require.NoError(t, err)
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, n)

	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("frame_%02d.jpg", i), rec.SourceFilename)
		assert.Equal(t, i%4, rec.Count)
		if i > 0 {
			assert.Greater(t, rec.ID, records[i-1].ID, "ids must be strictly increasing")
		}
	}
}

func TestHistoryRepository_ListAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryRepository_ListAllIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"a.jpg", "b.jpg", "a.jpg"} {
		_, err := repo.Append(ctx, name, 1, "result_"+name)
		require.NoError(t, err)
	}

	first, err := repo.ListAll(ctx)
	require.NoError(t, err)
	second, err := repo.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3, "duplicate filenames must produce independent records")
}

func TestHistoryRepository_ConcurrentAppends(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	ids := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rec, err := repo.Append(ctx, fmt.Sprintf("concurrent_%d.jpg", idx), idx, "r")
			if err != nil {
				t.Errorf("Concurrent append %d failed: %v", idx, err)
				return
			}
			ids <- rec.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, workers)
}

func TestHistoryRepository_SequentialAppendsOrdered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	a, err := repo.Append(ctx, "a.jpg", 0, "ra")
	require.NoError(t, err)
	b, err := repo.Append(ctx, "b.jpg", 0, "rb")
	require.NoError(t, err)

	assert.Less(t, a.ID, b.ID)
}

func TestHistoryRepository_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	db, err := New(dbPath)
	require.NoError(t, err)
	_, err = NewHistoryRepository(db).Append(ctx, "persist.jpg", 2, "result_persist.jpg")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := NewHistoryRepository(reopened).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "persist.jpg", records[0].SourceFilename)
	assert.Equal(t, 2, records[0].Count)
}

func TestHistoryRepository_ClosedStoreUnavailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.Append(context.Background(), "a.jpg", 1, "r")
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)

	_, err = repo.ListAll(context.Background())
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
}
