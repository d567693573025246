package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newRecord(filename, format string, status model.Status) *model.Record {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.Record{
		ID:               uuid.New().String(),
		OriginalFilename: filename,
		FileSize:         1024,
		Format:           format,
		StorageKey:       "blobs/" + filename,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestSQLiteDB_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := newRecord("meeting.wav", "wav", model.StatusPending)
	require.NoError(t, db.Create(ctx, rec))

	got, err := db.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "meeting.wav", got.OriginalFilename)
	assert.Equal(t, int64(1024), got.FileSize)
	assert.Equal(t, "wav", got.Format)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Empty(t, got.Text)
	assert.Empty(t, got.ErrorMessage)
	assert.Nil(t, got.ProcessingTime)
}

func TestSQLiteDB_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteDB_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := newRecord("meeting.wav", "wav", model.StatusPending)
	require.NoError(t, db.Create(ctx, rec))

	rec.MarkProcessing(time.Now().UTC())
	require.NoError(t, db.Update(ctx, rec))

	rec.MarkCompleted("hello world", 1.75, time.Now().UTC())
	require.NoError(t, db.Update(ctx, rec))

	got, err := db.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, "hello world", got.Text)
	require.NotNil(t, got.ProcessingTime)
	assert.InDelta(t, 1.75, *got.ProcessingTime, 0.001)
}

func TestSQLiteDB_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	rec := newRecord("ghost.wav", "wav", model.StatusPending)
	err := db.Update(context.Background(), rec)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteDB_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := newRecord("meeting.wav", "wav", model.StatusPending)
	require.NoError(t, db.Create(ctx, rec))

	require.NoError(t, db.Delete(ctx, rec.ID))

	_, err := db.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, db.Delete(ctx, rec.ID), sql.ErrNoRows)
}

func TestSQLiteDB_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []*model.Record{
		newRecord("alpha.wav", "wav", model.StatusCompleted),
		newRecord("beta.mp3", "mp3", model.StatusFailed),
		newRecord("gamma.wav", "wav", model.StatusPending),
		newRecord("delta_meeting.m4a", "m4a", model.StatusFailed),
	}
	for i, rec := range seed {
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Minute)
		rec.FileSize = int64((i + 1) * 100)
		require.NoError(t, db.Create(ctx, rec))
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		records, total, err := db.List(ctx, repository.ListQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, records, 4)
	})

	t.Run("filter by status", func(t *testing.T) {
		records, total, err := db.List(ctx, repository.ListQuery{Status: model.StatusFailed, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, rec := range records {
			assert.Equal(t, model.StatusFailed, rec.Status)
		}
	})

	t.Run("filter by format", func(t *testing.T) {
		_, total, err := db.List(ctx, repository.ListQuery{Format: "wav", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("search by filename substring", func(t *testing.T) {
		records, total, err := db.List(ctx, repository.ListQuery{Search: "meeting", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, records, 1)
		assert.Equal(t, "delta_meeting.m4a", records[0].OriginalFilename)
	})

	t.Run("order by file size ascending", func(t *testing.T) {
		records, _, err := db.List(ctx, repository.ListQuery{OrderBy: "file_size", Order: "asc", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, records, 4)
		for i := 1; i < len(records); i++ {
			assert.LessOrEqual(t, records[i-1].FileSize, records[i].FileSize)
		}
	})

	t.Run("unknown order column falls back to created_at", func(t *testing.T) {
		records, _, err := db.List(ctx, repository.ListQuery{OrderBy: "status; DROP TABLE transcriptions", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, records, 4)
	})

	t.Run("pagination", func(t *testing.T) {
		first, total, err := db.List(ctx, repository.ListQuery{OrderBy: "created_at", Order: "asc", Page: 1, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, first, 3)

		second, _, err := db.List(ctx, repository.ListQuery{OrderBy: "created_at", Order: "asc", Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, second, 1)
		assert.NotEqual(t, first[0].ID, second[0].ID)
	})
}

func TestSQLiteDB_ListByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	older := newRecord("old.wav", "wav", model.StatusPending)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	require.NoError(t, db.Create(ctx, older))
	require.NoError(t, db.Create(ctx, newRecord("new.wav", "wav", model.StatusPending)))
	require.NoError(t, db.Create(ctx, newRecord("done.wav", "wav", model.StatusCompleted)))

	records, err := db.ListByStatus(ctx, model.StatusPending, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "old.wav", records[0].OriginalFilename, "oldest first")
}

func TestSQLiteDB_ResetFailed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	failed1 := newRecord("a.wav", "wav", model.StatusFailed)
	failed1.ErrorMessage = "engine exploded"
	failed2 := newRecord("b.wav", "wav", model.StatusFailed)
	failed2.ErrorMessage = "timeout"
	completed := newRecord("c.wav", "wav", model.StatusCompleted)
	completed.Text = "done"

	require.NoError(t, db.Create(ctx, failed1))
	require.NoError(t, db.Create(ctx, failed2))
	require.NoError(t, db.Create(ctx, completed))

	count, err := db.ResetFailed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, id := range []string{failed1.ID, failed2.ID} {
		got, err := db.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, got.Status)
		assert.Empty(t, got.ErrorMessage)
	}

	got, err := db.GetByID(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status, "completed records are untouched")

	count, err = db.ResetFailed(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "second reset has nothing to do")
}
