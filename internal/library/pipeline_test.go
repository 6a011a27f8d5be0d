package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenavaapp/shenava-client/internal/domain"
)

func item(id, titleFa, titleEn, creator string) Item {
	return Item{
		Content: &domain.ContentItem{
			ID:          id,
			TitleFa:     titleFa,
			TitleEn:     titleEn,
			CreatorName: creator,
			Kind:        domain.KindAudiobook,
		},
	}
}

func withProgress(it Item, percent float64, finished bool, lastPlayed time.Time) Item {
	it.Progress = &domain.PlaybackProgress{
		ItemID:       it.Content.ID,
		Percent:      percent,
		IsFinished:   finished,
		LastPlayedAt: lastPlayed,
	}
	return it
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content.ID
	}
	return out
}

func TestStatusFilter_Partition(t *testing.T) {
	now := time.Now()
	items := []Item{
		item("fresh", "تازه", "", ""),                                        // no progress record
		withProgress(item("zero", "صفر", "", ""), 0, false, now),             // progress but never advanced
		withProgress(item("half", "نیمه", "", ""), 50, false, now),           // in progress
		withProgress(item("done", "تمام", "", ""), 100, true, now),           // finished
		withProgress(item("done-early", "رهاشده", "", ""), 30, true, now),    // finished flag wins
	}
	downloaded := func(id string) bool { return id == "half" }

	all := Apply(items, FilterState{Status: StatusAll}, downloaded)
	notStarted := Apply(items, FilterState{Status: StatusNotStarted}, downloaded)
	inProgress := Apply(items, FilterState{Status: StatusInProgress}, downloaded)
	finished := Apply(items, FilterState{Status: StatusFinished}, downloaded)

	assert.ElementsMatch(t, []string{"fresh", "zero", "half", "done", "done-early"}, ids(all))
	assert.ElementsMatch(t, []string{"fresh", "zero"}, ids(notStarted))
	assert.ElementsMatch(t, []string{"half"}, ids(inProgress))
	assert.ElementsMatch(t, []string{"done", "done-early"}, ids(finished))

	// The three progress-based partitions are mutually exclusive and cover
	// the "all" result.
	var union []string
	union = append(union, ids(notStarted)...)
	union = append(union, ids(inProgress)...)
	union = append(union, ids(finished)...)
	assert.ElementsMatch(t, ids(all), union)
}

func TestStatusFilter_Downloaded(t *testing.T) {
	items := []Item{item("a", "الف", "", ""), item("b", "ب", "", "")}

	got := Apply(items, FilterState{Status: StatusDownloaded}, func(id string) bool { return id == "b" })
	assert.Equal(t, []string{"b"}, ids(got))

	// Web platform: no ledger, empty result.
	got = Apply(items, FilterState{Status: StatusDownloaded}, nil)
	assert.Empty(t, got)
}

func TestSearchFilter(t *testing.T) {
	items := []Item{
		item("1", "کتاب صوتی شاهنامه", "Shahnameh", "فردوسی"),
		item("2", "هری پاتر", "Harry Potter", "جی. کی. رولینگ"),
		item("3", "بوف کور", "The Blind Owl", "صادق هدایت"),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "primary title substring", query: "شاهنامه", want: []string{"1"}},
		{name: "secondary title substring", query: "harry", want: []string{"2"}},
		{name: "creator substring", query: "هدایت", want: []string{"3"}},
		{name: "arabic-form query matches persian field", query: "كتاب", want: []string{"1"}},
		{name: "no match excludes all", query: "ناموجود", want: nil},
		{name: "blank query is no filter", query: "   ", want: []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(items, FilterState{Status: StatusAll, Query: tt.query}, nil)
			assert.Equal(t, tt.want, func() []string {
				if len(got) == 0 {
					return nil
				}
				return ids(got)
			}())
		})
	}
}

func TestSort_RecentlyPlayed_NullsLast(t *testing.T) {
	now := time.Now()
	items := []Item{
		item("never-a", "", "", ""),
		withProgress(item("old", "", "", ""), 10, false, now.Add(-time.Hour)),
		item("never-b", "", "", ""),
		withProgress(item("recent", "", "", ""), 10, false, now),
	}

	got := Apply(items, FilterState{Status: StatusAll, Sort: SortRecentlyPlayed}, nil)

	// Played items first, most recent first; unplayed items keep their
	// relative input order at the end.
	assert.Equal(t, []string{"recent", "old", "never-a", "never-b"}, ids(got))
}

func TestSort_Title(t *testing.T) {
	items := []Item{
		item("b", "Banana", "", ""),
		item("a", "Apple", "", ""),
	}

	got := Apply(items, FilterState{Status: StatusAll, Sort: SortTitle}, nil)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestSort_DateAdded_MissingSortsLast(t *testing.T) {
	now := time.Now()
	a := item("newest", "", "", "")
	a.AddedAt = now
	b := item("older", "", "", "")
	b.AddedAt = now.Add(-time.Hour)
	c := item("undated", "", "", "")

	got := Apply([]Item{c, b, a}, FilterState{Status: StatusAll, Sort: SortDateAdded}, nil)
	assert.Equal(t, []string{"newest", "older", "undated"}, ids(got))
}

func TestSort_Duration(t *testing.T) {
	a := item("short", "", "", "")
	a.Content.DurationSec = 60
	b := item("long", "", "", "")
	b.Content.DurationSec = 7200

	got := Apply([]Item{a, b}, FilterState{Status: StatusAll, Sort: SortDuration}, nil)
	assert.Equal(t, []string{"long", "short"}, ids(got))
}

func TestSort_Stability(t *testing.T) {
	// Equal keys keep their pre-sort order.
	a := item("first", "", "", "")
	b := item("second", "", "", "")
	a.Content.DurationSec = 100
	b.Content.DurationSec = 100

	got := Apply([]Item{a, b}, FilterState{Status: StatusAll, Sort: SortDuration}, nil)
	assert.Equal(t, []string{"first", "second"}, ids(got))
}

func TestPipeline_StatusBeforeSort(t *testing.T) {
	now := time.Now()
	a := withProgress(item("A", "Zebra", "", ""), 100, true, now)
	b := withProgress(item("B", "Apple", "", ""), 50, false, now)

	got := Apply([]Item{a, b}, FilterState{Status: StatusFinished, Sort: SortTitle}, nil)

	// B is excluded by the status stage regardless of alphabetical position.
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Content.ID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	a := item("a", "", "", "")
	b := item("b", "", "", "")
	a.Content.DurationSec = 1
	b.Content.DurationSec = 2
	input := []Item{a, b}

	Apply(input, FilterState{Status: StatusAll, Sort: SortDuration}, nil)

	assert.Equal(t, []string{"a", "b"}, ids(input))
}
