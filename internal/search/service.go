// Package search runs free-text queries against the backend and keeps a
// small persisted history of what the user looked for. Local library search
// lives in the library pipeline; this package only covers the bookstore.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/id"
	"github.com/shenavaapp/shenava-client/internal/normalize"
	"github.com/shenavaapp/shenava-client/internal/store"
)

// DefaultHistoryLimit caps the remembered query list.
const DefaultHistoryLimit = 10

const collectionSearch = "search_index"

// Service performs remote search and manages the search history.
type Service struct {
	client       backend.Client
	kv           *store.Store
	historyLimit int
	logger       *slog.Logger
}

// NewService creates a search service. A historyLimit of zero falls back to
// DefaultHistoryLimit.
func NewService(client backend.Client, kv *store.Store, historyLimit int, logger *slog.Logger) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		client:       client,
		kv:           kv,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// searchRow is the wire shape of a search hit. The search collection is a
// server-side view holding a pre-folded title column to match against.
type searchRow struct {
	domain.ContentItem
	IsMusic   bool `json:"is_music"`
	IsPodcast bool `json:"is_podcast"`
	IsArticle bool `json:"is_article"`
	IsEbook   bool `json:"is_ebook"`
}

func (r searchRow) toDomain() domain.ContentItem {
	item := r.ContentItem
	switch {
	case r.IsMusic:
		item.Kind = domain.KindMusic
	case r.IsPodcast:
		item.Kind = domain.KindPodcast
	case r.IsArticle:
		item.Kind = domain.KindArticle
	case r.IsEbook:
		item.Kind = domain.KindEbook
	default:
		item.Kind = domain.KindAudiobook
	}
	return item
}

// Search runs a free-text query against the backend. A blank query returns
// nothing without touching the network.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.ContentItem, error) {
	q := normalize.Query(query)
	if q == "" {
		return nil, nil
	}

	var rows []searchRow
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionSearch,
		Filters:    []backend.Filter{backend.ILike("title_folded", "*"+q+"*")},
		Limit:      limit,
	}, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ContentItem, len(rows))
	for i, r := range rows {
		items[i] = r.toDomain()
	}
	return items, nil
}

// Remember records a submitted query at the head of the history. Queries
// that fold to the same text replace their older entry instead of piling
// up, and the list never grows past the limit. Blank queries are ignored.
func (s *Service) Remember(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)
	folded := normalize.Query(query)
	if folded == "" {
		return nil
	}

	entries, err := s.kv.GetSearchHistory(ctx)
	if err != nil {
		return err
	}

	next := make([]domain.SearchEntry, 0, len(entries)+1)
	next = append(next, domain.SearchEntry{
		ID:         id.MustGenerate("srch"),
		Query:      trimmed,
		SearchedAt: time.Now(),
	})
	for _, e := range entries {
		if normalize.Query(e.Query) == folded {
			continue
		}
		next = append(next, e)
	}
	if len(next) > s.historyLimit {
		next = next[:s.historyLimit]
	}

	return s.kv.SaveSearchHistory(ctx, next)
}

// History returns remembered queries, most recent first.
func (s *Service) History(ctx context.Context) ([]domain.SearchEntry, error) {
	return s.kv.GetSearchHistory(ctx)
}

// ClearHistory forgets all remembered queries.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.kv.ClearSearchHistory(ctx)
}
