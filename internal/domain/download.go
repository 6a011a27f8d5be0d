package domain

import "time"

// DownloadedChapter is a local ledger entry for one offline chapter.
// Entries are immutable once written; they are removed when the user deletes
// the download or when verification finds the backing file missing.
type DownloadedChapter struct {
	AudiobookID  string    `json:"audiobook_id"`
	ChapterID    string    `json:"chapter_id"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// DownloadID generates the composite key "audiobookID:chapterID".
func DownloadID(audiobookID, chapterID string) string {
	return audiobookID + ":" + chapterID
}
