// Package library transforms the raw list of owned content items into the
// list the library screen renders. The pipeline is a pure function of
// (items, filter state); it holds no state of its own and re-runs on every
// relevant change.
package library

import (
	"time"

	"github.com/shenavaapp/shenava-client/internal/domain"
)

// StatusFilter partitions items by playback state.
type StatusFilter string

// Status filters.
const (
	StatusAll        StatusFilter = "all"
	StatusNotStarted StatusFilter = "not_started"
	StatusInProgress StatusFilter = "in_progress"
	StatusFinished   StatusFilter = "finished"
	StatusDownloaded StatusFilter = "downloaded"
)

// SortOrder selects the sort applied after filtering.
type SortOrder string

// Sort orders.
const (
	SortRecentlyPlayed SortOrder = "recently_played"
	SortTitle          SortOrder = "title"
	SortDateAdded      SortOrder = "date_added"
	SortDuration       SortOrder = "duration"
)

// ViewMode selects grid or list rendering. Carried in the filter state for
// completeness; the pipeline itself ignores it.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// FilterState is the ephemeral, per-screen-session filter configuration.
// It is never persisted and resets when the screen is recreated.
type FilterState struct {
	Status StatusFilter
	Query  string
	Sort   SortOrder
	View   ViewMode
}

// DefaultFilterState returns the state a fresh library screen starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		Status: StatusAll,
		Sort:   SortRecentlyPlayed,
		View:   ViewGrid,
	}
}

// Item is one library row: an owned content item annotated with optional
// playback progress and the time it entered the library.
type Item struct {
	Content  *domain.ContentItem
	Progress *domain.PlaybackProgress
	AddedAt  time.Time
}

// DownloadedFunc reports whether an item has at least one downloaded
// chapter. A nil func means the platform has no download ledger (web), and
// the downloaded filter yields an empty result.
type DownloadedFunc func(itemID string) bool
