package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/store"
)

// downloadColumns is the ordered list of columns selected in download
// queries. Must match the scan order in scanDownload.
const downloadColumns = `audiobook_id, chapter_id, path, size_bytes, downloaded_at`

// scanDownload scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.DownloadedChapter.
func scanDownload(scanner interface{ Scan(dest ...any) error }) (*domain.DownloadedChapter, error) {
	var d domain.DownloadedChapter
	var downloadedAt string

	err := scanner.Scan(
		&d.AudiobookID,
		&d.ChapterID,
		&d.Path,
		&d.SizeBytes,
		&downloadedAt,
	)
	if err != nil {
		return nil, err
	}

	d.DownloadedAt, err = parseTime(downloadedAt)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// UpsertDownload records a completed download, overwriting any previous
// entry for the same (audiobook, chapter) pair.
func (s *Store) UpsertDownload(ctx context.Context, d *domain.DownloadedChapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (audiobook_id, chapter_id, path, size_bytes, downloaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (audiobook_id, chapter_id) DO UPDATE SET
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			downloaded_at = excluded.downloaded_at`,
		d.AudiobookID,
		d.ChapterID,
		d.Path,
		d.SizeBytes,
		formatTime(d.DownloadedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert download: %w", err)
	}
	return nil
}

// GetDownload returns one ledger entry.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) GetDownload(ctx context.Context, audiobookID, chapterID string) (*domain.DownloadedChapter, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+downloadColumns+`
		FROM downloads
		WHERE audiobook_id = ? AND chapter_id = ?`,
		audiobookID, chapterID,
	)

	d, err := scanDownload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get download: %w", err)
	}
	return d, nil
}

// DeleteDownload removes one ledger entry. Deleting a missing entry is not
// an error.
func (s *Store) DeleteDownload(ctx context.Context, audiobookID, chapterID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM downloads WHERE audiobook_id = ? AND chapter_id = ?`,
		audiobookID, chapterID,
	)
	if err != nil {
		return fmt.Errorf("delete download: %w", err)
	}
	return nil
}

// ListDownloads returns all ledger entries ordered by audiobook then chapter.
func (s *Store) ListDownloads(ctx context.Context) ([]*domain.DownloadedChapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+downloadColumns+`
		FROM downloads
		ORDER BY audiobook_id, chapter_id`)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	return collectDownloads(rows)
}

// ListDownloadsByAudiobook returns the ledger entries for one audiobook,
// ordered by chapter.
func (s *Store) ListDownloadsByAudiobook(ctx context.Context, audiobookID string) ([]*domain.DownloadedChapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+downloadColumns+`
		FROM downloads
		WHERE audiobook_id = ?
		ORDER BY chapter_id`,
		audiobookID,
	)
	if err != nil {
		return nil, fmt.Errorf("list downloads by audiobook: %w", err)
	}
	defer rows.Close()

	return collectDownloads(rows)
}

func collectDownloads(rows *sql.Rows) ([]*domain.DownloadedChapter, error) {
	var out []*domain.DownloadedChapter
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate downloads: %w", err)
	}
	return out, nil
}

// TotalDownloadSize returns the sum of size_bytes across all entries.
func (s *Store) TotalDownloadSize(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(size_bytes) FROM downloads`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total download size: %w", err)
	}
	return total.Int64, nil
}

// AudiobookDownloadSize returns the sum of size_bytes for one audiobook.
func (s *Store) AudiobookDownloadSize(ctx context.Context, audiobookID string) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(size_bytes) FROM downloads WHERE audiobook_id = ?`,
		audiobookID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("audiobook download size: %w", err)
	}
	return total.Int64, nil
}

// HasDownloads reports whether any chapter of the audiobook is downloaded.
func (s *Store) HasDownloads(ctx context.Context, audiobookID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM downloads WHERE audiobook_id = ? LIMIT 1`,
		audiobookID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has downloads: %w", err)
	}
	return true, nil
}

// CountDownloads returns the number of ledger entries.
func (s *Store) CountDownloads(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM downloads`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count downloads: %w", err)
	}
	return n, nil
}

// DeleteDownloadsByAudiobook removes all entries for one audiobook and
// returns how many rows were deleted.
func (s *Store) DeleteDownloadsByAudiobook(ctx context.Context, audiobookID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM downloads WHERE audiobook_id = ?`,
		audiobookID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete downloads by audiobook: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// DeleteAllDownloads clears the ledger.
func (s *Store) DeleteAllDownloads(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM downloads`); err != nil {
		return fmt.Errorf("delete all downloads: %w", err)
	}
	return nil
}
