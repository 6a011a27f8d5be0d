// Package catalog fetches content lists from the backend: home feed
// sections, kind-scoped bookstore lists, the user's library, and the
// wishlist. Content-kind partitioning happens here, at fetch time; the
// library pipeline downstream is kind-agnostic.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/library"
)

// Collection names on the backend.
const (
	collectionItems        = "items"
	collectionSections     = "home_sections"
	collectionEntitlements = "entitlements"
	collectionProgress     = "playback_progress"
	collectionWishlist     = "wishlist"
)

// Section is one pre-computed home-feed row: an opaque ordered list of
// items under a heading. The server decides what goes in it.
type Section struct {
	ID      string               `json:"id"`
	TitleFa string               `json:"title_fa"`
	Rank    int                  `json:"rank"`
	Items   []domain.ContentItem `json:"items"`
}

// Service fetches catalog data from the backend.
type Service struct {
	client   backend.Client
	caps     backend.Capabilities
	auth     *backend.Auth
	pageSize int
	logger   *slog.Logger
}

// NewService creates a catalog service.
func NewService(client backend.Client, caps backend.Capabilities, auth *backend.Auth, pageSize int, logger *slog.Logger) *Service {
	return &Service{
		client:   client,
		caps:     caps,
		auth:     auth,
		pageSize: pageSize,
		logger:   logger,
	}
}

// itemColumns returns the item columns this backend supports.
func (s *Service) itemColumns() []string {
	cols := []string{"id", "title_fa", "creator_name", "cover_path", "cover_hash",
		"duration_sec", "page_count", "is_free", "created_at",
		"is_music", "is_podcast", "is_article", "is_ebook"}
	if s.caps.SecondaryTitles {
		cols = append(cols, "title_en")
	}
	if s.caps.Ratings {
		cols = append(cols, "rating", "rating_count")
	}
	return cols
}

// itemRow is the wire shape of a content item. The backend still models
// kind as boolean flags; decode folds them into the single ContentKind.
type itemRow struct {
	domain.ContentItem
	IsMusic   bool `json:"is_music"`
	IsPodcast bool `json:"is_podcast"`
	IsArticle bool `json:"is_article"`
	IsEbook   bool `json:"is_ebook"`
}

func (r itemRow) toDomain() domain.ContentItem {
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

// kindFilters maps a content kind to the flag predicates selecting it.
func kindFilters(kind domain.ContentKind) []backend.Filter {
	switch kind {
	case domain.KindMusic:
		return []backend.Filter{backend.Eq("is_music", true)}
	case domain.KindPodcast:
		return []backend.Filter{backend.Eq("is_podcast", true)}
	case domain.KindArticle:
		return []backend.Filter{backend.Eq("is_article", true)}
	case domain.KindEbook:
		return []backend.Filter{backend.Eq("is_ebook", true)}
	default:
		// Audiobooks are the unflagged remainder.
		return []backend.Filter{
			backend.Eq("is_music", false),
			backend.Eq("is_podcast", false),
			backend.Eq("is_article", false),
			backend.Eq("is_ebook", false),
		}
	}
}

// HomeSections fetches the home feed, ordered by rank.
func (s *Service) HomeSections(ctx context.Context) ([]Section, error) {
	var sections []Section
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionSections,
		Select:     []string{"id", "title_fa", "rank", "items(*)"},
		Order:      &backend.OrderBy{Column: "rank"},
	}, &sections)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// fetchItemPage loads one page of kind-scoped items, newest first.
func (s *Service) fetchItemPage(ctx context.Context, kind domain.ContentKind, offset, limit int) ([]domain.ContentItem, error) {
	var rows []itemRow
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionItems,
		Select:     s.itemColumns(),
		Filters:    kindFilters(kind),
		Order:      &backend.OrderBy{Column: "created_at", Desc: true},
		Offset:     offset,
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

// ItemPaginator creates a paginator over the kind-scoped bookstore list.
func (s *Service) ItemPaginator(kind domain.ContentKind) *Paginator[domain.ContentItem] {
	return NewPaginator(func(ctx context.Context, offset, limit int) ([]domain.ContentItem, error) {
		return s.fetchItemPage(ctx, kind, offset, limit)
	}, s.pageSize)
}

// entitlementRow is the wire shape of an entitlement with its item joined in.
type entitlementRow struct {
	ItemID    string    `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
	Item      itemRow   `json:"items"`
}

// LibraryItems fetches the signed-in user's owned items with their playback
// progress, assembled into pipeline rows.
func (s *Service) LibraryItems(ctx context.Context) ([]library.Item, error) {
	userID := s.auth.CurrentUserID(ctx)
	if userID == "" {
		return nil, errors.Unauthorized("sign in to see your library")
	}

	var entitlements []entitlementRow
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionEntitlements,
		Select:     []string{"item_id", "created_at", "items(*)"},
		Filters:    []backend.Filter{backend.Eq("user_id", userID)},
	}, &entitlements)
	if err != nil {
		return nil, err
	}

	var progress []domain.PlaybackProgress
	err = s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionProgress,
		Filters:    []backend.Filter{backend.Eq("user_id", userID)},
	}, &progress)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]*domain.PlaybackProgress, len(progress))
	for i := range progress {
		byItem[progress[i].ItemID] = &progress[i]
	}

	items := make([]library.Item, 0, len(entitlements))
	for _, e := range entitlements {
		content := e.Item.toDomain()
		items = append(items, library.Item{
			Content:  &content,
			Progress: byItem[e.ItemID],
			AddedAt:  e.CreatedAt,
		})
	}
	return items, nil
}

// AddToWishlist records a wishlist row for the signed-in user.
func (s *Service) AddToWishlist(ctx context.Context, itemID string) error {
	if !s.caps.Wishlist {
		return errors.Backend("wishlist is not available on this backend")
	}
	userID := s.auth.CurrentUserID(ctx)
	if userID == "" {
		return errors.Unauthorized("sign in to use the wishlist")
	}

	return s.client.Insert(ctx, collectionWishlist, map[string]string{
		"user_id": userID,
		"item_id": itemID,
	})
}

// RemoveFromWishlist deletes the wishlist row for the signed-in user.
func (s *Service) RemoveFromWishlist(ctx context.Context, itemID string) error {
	if !s.caps.Wishlist {
		return errors.Backend("wishlist is not available on this backend")
	}
	userID := s.auth.CurrentUserID(ctx)
	if userID == "" {
		return errors.Unauthorized("sign in to use the wishlist")
	}

	return s.client.Delete(ctx, collectionWishlist, []backend.Filter{
		backend.Eq("user_id", userID),
		backend.Eq("item_id", itemID),
	})
}

// Wishlist fetches the signed-in user's wishlisted items. On a backend
// without the wishlist collection this is an empty list, not an error.
func (s *Service) Wishlist(ctx context.Context) ([]domain.ContentItem, error) {
	if !s.caps.Wishlist {
		return nil, nil
	}
	userID := s.auth.CurrentUserID(ctx)
	if userID == "" {
		return nil, errors.Unauthorized("sign in to see your wishlist")
	}

	var rows []struct {
		Item itemRow `json:"items"`
	}
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionWishlist,
		Select:     []string{"item_id", "items(*)"},
		Filters:    []backend.Filter{backend.Eq("user_id", userID)},
	}, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ContentItem, len(rows))
	for i, r := range rows {
		items[i] = r.Item.toDomain()
	}
	return items, nil
}
