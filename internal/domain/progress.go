package domain

import "time"

// PlaybackProgress is the per-user, per-item playback checkpoint. It is
// created on first playback and mutated on every checkpoint; the client
// never deletes it.
type PlaybackProgress struct {
	UserID       string    `json:"user_id"`
	ItemID       string    `json:"item_id"`
	ChapterIndex int       `json:"chapter_index"`
	PositionSec  int64     `json:"position_sec"`
	Percent      float64   `json:"percent"` // 0-100
	IsFinished   bool      `json:"is_finished"`
	LastPlayedAt time.Time `json:"last_played_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProgressStatus classifies an item's playback state.
type ProgressStatus int

// Progress statuses. An item with no progress record is NotStarted.
const (
	StatusNotStarted ProgressStatus = iota
	StatusInProgress
	StatusFinished
)

// Status classifies a progress record. A nil record or a record that never
// advanced counts as not started; the finished flag wins over percent.
func (p *PlaybackProgress) Status() ProgressStatus {
	if p == nil || (p.Percent == 0 && !p.IsFinished) {
		return StatusNotStarted
	}
	if p.IsFinished {
		return StatusFinished
	}
	return StatusInProgress
}

// ProgressID generates the composite key "userID:itemID".
func ProgressID(userID, itemID string) string {
	return userID + ":" + itemID
}
