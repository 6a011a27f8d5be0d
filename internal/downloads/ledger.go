// Package downloads maintains the local ledger of offline chapters: which
// remote audio chapters have been copied to device storage, their sizes,
// and grouped and aggregated views for the UI.
//
// The ledger assumes the file write already succeeded when a download is
// recorded. Filesystem failures during deletion are best effort: logged per
// entry and never surfaced as a failure of the whole batch.
package downloads

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/state"
	"github.com/shenavaapp/shenava-client/internal/store/sqlite"
	"github.com/shenavaapp/shenava-client/internal/util"
)

// Ledger is the authoritative local record of downloaded chapters.
type Ledger struct {
	store  *sqlite.Store
	logger *slog.Logger

	// revision increments on every mutation so offline badges elsewhere in
	// the UI can re-render without polling the database.
	revision *state.Store[int64]
}

// New creates a ledger backed by the given store.
func New(store *sqlite.Store, logger *slog.Logger) *Ledger {
	return &Ledger{
		store:    store,
		logger:   logger,
		revision: state.New[int64](0),
	}
}

// Revision exposes the change counter for subscription.
func (l *Ledger) Revision() *state.Store[int64] {
	return l.revision
}

func (l *Ledger) bump() {
	l.revision.Update(func(v int64) int64 { return v + 1 })
}

// Record inserts or overwrites a ledger entry for a completed download.
func (l *Ledger) Record(ctx context.Context, audiobookID, chapterID, path string, sizeBytes int64) error {
	entry := &domain.DownloadedChapter{
		AudiobookID:  audiobookID,
		ChapterID:    chapterID,
		Path:         path,
		SizeBytes:    sizeBytes,
		DownloadedAt: time.Now(),
	}
	if err := l.store.UpsertDownload(ctx, entry); err != nil {
		return err
	}
	l.bump()
	return nil
}

// DeleteChapter removes one ledger entry and its backing file. Idempotent
// when the entry or file is already absent.
func (l *Ledger) DeleteChapter(ctx context.Context, audiobookID, chapterID string) error {
	entry, err := l.store.GetDownload(ctx, audiobookID, chapterID)
	if err == nil {
		l.removeFile(entry)
	}

	if err := l.store.DeleteDownload(ctx, audiobookID, chapterID); err != nil {
		return err
	}
	l.bump()
	return nil
}

// DeleteAudiobook removes all entries for one audiobook. File deletion is
// best effort per entry; one failure never aborts the rest.
func (l *Ledger) DeleteAudiobook(ctx context.Context, audiobookID string) error {
	entries, err := l.store.ListDownloadsByAudiobook(ctx, audiobookID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		l.removeFile(entry)
	}

	if _, err := l.store.DeleteDownloadsByAudiobook(ctx, audiobookID); err != nil {
		return err
	}
	l.bump()
	return nil
}

// DeleteAll clears the entire ledger with the same best-effort semantics.
func (l *Ledger) DeleteAll(ctx context.Context) error {
	entries, err := l.store.ListDownloads(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		l.removeFile(entry)
	}

	if err := l.store.DeleteAllDownloads(ctx); err != nil {
		return err
	}
	l.bump()
	return nil
}

// Verify reconciles the ledger against the filesystem: entries whose
// backing file no longer exists are dropped. Entries are never added.
// Invoked opportunistically (screen load, external file removal), not on a
// timer. A missing file means "not downloaded", not an error: the user may
// have cleared app storage, or the OS may have evicted the cache.
func (l *Ledger) Verify(ctx context.Context) (dropped int, err error) {
	entries, err := l.store.ListDownloads(ctx)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if _, statErr := os.Stat(entry.Path); statErr == nil {
			continue
		}
		if delErr := l.store.DeleteDownload(ctx, entry.AudiobookID, entry.ChapterID); delErr != nil {
			return dropped, delErr
		}
		dropped++
		l.logger.Info("dropped orphaned download entry",
			"audiobook_id", entry.AudiobookID,
			"chapter_id", entry.ChapterID,
			"path", entry.Path,
		)
	}

	if dropped > 0 {
		l.bump()
	}
	return dropped, nil
}

// GroupByAudiobook returns downloaded chapters keyed by audiobook ID, each
// group ordered by chapter.
func (l *Ledger) GroupByAudiobook(ctx context.Context) (map[string][]*domain.DownloadedChapter, error) {
	entries, err := l.store.ListDownloads(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*domain.DownloadedChapter)
	for _, entry := range entries {
		groups[entry.AudiobookID] = append(groups[entry.AudiobookID], entry)
	}
	return groups, nil
}

// TotalSize returns the total downloaded bytes across the ledger.
func (l *Ledger) TotalSize(ctx context.Context) (int64, error) {
	return l.store.TotalDownloadSize(ctx)
}

// AudiobookSize returns the downloaded bytes for one audiobook.
func (l *Ledger) AudiobookSize(ctx context.Context, audiobookID string) (int64, error) {
	return l.store.AudiobookDownloadSize(ctx, audiobookID)
}

// TotalSizeDisplay returns the total downloaded size as a localized
// human-readable string.
func (l *Ledger) TotalSizeDisplay(ctx context.Context) (string, error) {
	total, err := l.TotalSize(ctx)
	if err != nil {
		return "", err
	}
	return util.FormatSizeFa(total), nil
}

// HasDownloads reports whether any chapter of the item is downloaded. Used
// to render offline badges.
func (l *Ledger) HasDownloads(ctx context.Context, audiobookID string) (bool, error) {
	return l.store.HasDownloads(ctx, audiobookID)
}

// removeFile deletes a backing file, logging failures instead of
// propagating them.
func (l *Ledger) removeFile(entry *domain.DownloadedChapter) {
	err := os.Remove(entry.Path)
	if err == nil || os.IsNotExist(err) {
		return
	}
	l.logger.Warn("failed to delete download file",
		"path", entry.Path,
		"audiobook_id", entry.AudiobookID,
		"chapter_id", entry.ChapterID,
		"error", err,
	)
}
