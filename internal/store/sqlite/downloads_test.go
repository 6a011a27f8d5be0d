package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testChapter(audiobookID, chapterID string, size int64) *domain.DownloadedChapter {
	return &domain.DownloadedChapter{
		AudiobookID:  audiobookID,
		ChapterID:    chapterID,
		Path:         "/downloads/" + audiobookID + "/" + chapterID + ".mp3",
		SizeBytes:    size,
		DownloadedAt: time.Now(),
	}
}

func TestUpsertDownload_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 250)))

	n, err := s.CountDownloads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "recording twice keeps exactly one entry")

	// The latest write wins.
	d, err := s.GetDownload(ctx, "ab-1", "ch-1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), d.SizeBytes)
}

func TestGetDownload_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetDownload(context.Background(), "ab-x", "ch-x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteDownload_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))
	require.NoError(t, s.DeleteDownload(ctx, "ab-1", "ch-1"))
	require.NoError(t, s.DeleteDownload(ctx, "ab-1", "ch-1"))

	n, err := s.CountDownloads(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAggregateSizes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-2", 200)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-2", "ch-1", 50)))

	total, err := s.TotalDownloadSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	perBook, err := s.AudiobookDownloadSize(ctx, "ab-1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), perBook)

	// Deleting one entry reduces the total by exactly its size.
	require.NoError(t, s.DeleteDownload(ctx, "ab-1", "ch-2"))
	total, err = s.TotalDownloadSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)
}

func TestTotalDownloadSize_EmptyLedger(t *testing.T) {
	s := setupTestStore(t)

	total, err := s.TotalDownloadSize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestHasDownloads(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ok, err := s.HasDownloads(ctx, "ab-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))

	ok, err = s.HasDownloads(ctx, "ab-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListAndDeleteByAudiobook(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-2", 200)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-2", "ch-1", 50)))

	list, err := s.ListDownloadsByAudiobook(ctx, "ab-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ch-1", list[0].ChapterID, "ordered by chapter")

	n, err := s.DeleteDownloadsByAudiobook(ctx, "ab-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := s.ListDownloads(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ab-2", all[0].AudiobookID)
}

func TestDeleteAllDownloads(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-1", "ch-1", 100)))
	require.NoError(t, s.UpsertDownload(ctx, testChapter("ab-2", "ch-1", 50)))

	require.NoError(t, s.DeleteAllDownloads(ctx))

	n, err := s.CountDownloads(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
