package library

import (
	"sort"
	"strings"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/normalize"
)

// Apply runs the pipeline: status filter, then text search, then sort. The
// stage order is fixed. The input slice is not modified.
func Apply(items []Item, fs FilterState, downloaded DownloadedFunc) []Item {
	out := filterStatus(items, fs.Status, downloaded)
	out = filterQuery(out, fs.Query)
	sortItems(out, fs.Sort)
	return out
}

// filterStatus partitions by progress state. Items lacking a progress
// record are never in-progress or finished; they default to not-started.
func filterStatus(items []Item, status StatusFilter, downloaded DownloadedFunc) []Item {
	if status == StatusAll {
		return append([]Item(nil), items...)
	}

	out := make([]Item, 0, len(items))
	for _, item := range items {
		switch status {
		case StatusNotStarted:
			if item.Progress.Status() == domain.StatusNotStarted {
				out = append(out, item)
			}
		case StatusInProgress:
			if item.Progress.Status() == domain.StatusInProgress {
				out = append(out, item)
			}
		case StatusFinished:
			if item.Progress.Status() == domain.StatusFinished {
				out = append(out, item)
			}
		case StatusDownloaded:
			// No ledger on this platform means nothing is downloaded.
			if downloaded != nil && downloaded(item.Content.ID) {
				out = append(out, item)
			}
		}
	}
	return out
}

// filterQuery retains items where any normalized candidate field contains
// the normalized query. A query that folds to nothing means no filtering.
func filterQuery(items []Item, query string) []Item {
	q := normalize.Query(query)
	if q == "" {
		return items
	}

	out := make([]Item, 0, len(items))
	for _, item := range items {
		c := item.Content
		if strings.Contains(normalize.Text(c.TitleFa), q) ||
			strings.Contains(normalize.Text(c.TitleEn), q) ||
			strings.Contains(normalize.Text(c.CreatorName), q) {
			out = append(out, item)
		}
	}
	return out
}

// sortItems sorts in place, stably, so equal keys keep their pre-sort order.
func sortItems(items []Item, order SortOrder) {
	switch order {
	case SortRecentlyPlayed:
		// Items without progress sort last; among played items, most
		// recent first.
		sort.SliceStable(items, func(i, j int) bool {
			pi, pj := items[i].Progress, items[j].Progress
			switch {
			case pi == nil:
				return false
			case pj == nil:
				return true
			default:
				return pi.LastPlayedAt.After(pj.LastPlayedAt)
			}
		})
	case SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return normalize.Text(items[i].Content.TitleFa) < normalize.Text(items[j].Content.TitleFa)
		})
	case SortDateAdded:
		// Most recently added first; a missing date counts as oldest.
		sort.SliceStable(items, func(i, j int) bool {
			ai, aj := items[i].AddedAt, items[j].AddedAt
			switch {
			case ai.IsZero():
				return false
			case aj.IsZero():
				return true
			default:
				return ai.After(aj)
			}
		})
	case SortDuration:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Content.DurationSec > items[j].Content.DurationSec
		})
	}
}
