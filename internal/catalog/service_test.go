package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/store"
)

// fakeClient serves canned rows per collection and records specs.
type fakeClient struct {
	rows  map[string]func(spec backend.QuerySpec, dest any) error
	specs []backend.QuerySpec
}

func (f *fakeClient) Query(_ context.Context, spec backend.QuerySpec, dest any) error {
	f.specs = append(f.specs, spec)
	if fn, ok := f.rows[spec.Collection]; ok {
		return fn(spec, dest)
	}
	return errors.NotFound("no such collection")
}

func (f *fakeClient) Insert(context.Context, string, any) error          { return nil }
func (f *fakeClient) Delete(context.Context, string, []backend.Filter) error { return nil }

func signedInAuth(t *testing.T, userID string) *backend.Auth {
	t.Helper()

	kv, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	auth := backend.NewAuth(kv, logger.Discard().Logger)
	if userID != "" {
		require.NoError(t, auth.SaveSession(context.Background(), &domain.Session{
			UserID:      userID,
			AccessToken: "tok",
			CreatedAt:   time.Now(),
		}))
	}
	return auth
}

func TestKindFilters(t *testing.T) {
	music := kindFilters(domain.KindMusic)
	require.Len(t, music, 1)
	assert.Equal(t, "is_music", music[0].Column)

	// Audiobooks are selected by excluding every flag.
	audiobook := kindFilters(domain.KindAudiobook)
	assert.Len(t, audiobook, 4)
}

func TestItemRow_KindFolding(t *testing.T) {
	tests := []struct {
		name string
		row  itemRow
		want domain.ContentKind
	}{
		{name: "unflagged is audiobook", row: itemRow{}, want: domain.KindAudiobook},
		{name: "music flag", row: itemRow{IsMusic: true}, want: domain.KindMusic},
		{name: "podcast flag", row: itemRow{IsPodcast: true}, want: domain.KindPodcast},
		{name: "article flag", row: itemRow{IsArticle: true}, want: domain.KindArticle},
		{name: "ebook flag", row: itemRow{IsEbook: true}, want: domain.KindEbook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.toDomain().Kind)
		})
	}
}

func TestItemColumns_CapabilityGated(t *testing.T) {
	base := NewService(&fakeClient{}, backend.Capabilities{}, nil, 20, logger.Discard().Logger)
	assert.NotContains(t, base.itemColumns(), "title_en")
	assert.NotContains(t, base.itemColumns(), "rating")

	full := NewService(&fakeClient{}, backend.Capabilities{SecondaryTitles: true, Ratings: true}, nil, 20, logger.Discard().Logger)
	assert.Contains(t, full.itemColumns(), "title_en")
	assert.Contains(t, full.itemColumns(), "rating")
}

func TestLibraryItems_RequiresSignIn(t *testing.T) {
	svc := NewService(&fakeClient{}, backend.Capabilities{}, signedInAuth(t, ""), 20, logger.Discard().Logger)

	_, err := svc.LibraryItems(context.Background())
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestLibraryItems_JoinsProgress(t *testing.T) {
	client := &fakeClient{rows: map[string]func(backend.QuerySpec, any) error{
		collectionEntitlements: func(_ backend.QuerySpec, dest any) error {
			rows := dest.(*[]entitlementRow)
			*rows = []entitlementRow{
				{ItemID: "itm-1", CreatedAt: time.Now(), Item: itemRow{ContentItem: domain.ContentItem{ID: "itm-1", TitleFa: "شاهنامه"}}},
				{ItemID: "itm-2", CreatedAt: time.Now(), Item: itemRow{ContentItem: domain.ContentItem{ID: "itm-2", TitleFa: "بوف کور"}}},
			}
			return nil
		},
		collectionProgress: func(_ backend.QuerySpec, dest any) error {
			rows := dest.(*[]domain.PlaybackProgress)
			*rows = []domain.PlaybackProgress{
				{ItemID: "itm-2", Percent: 40, LastPlayedAt: time.Now()},
			}
			return nil
		},
	}}

	svc := NewService(client, backend.Capabilities{}, signedInAuth(t, "usr-1"), 20, logger.Discard().Logger)

	items, err := svc.LibraryItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Nil(t, items[0].Progress)
	require.NotNil(t, items[1].Progress)
	assert.Equal(t, domain.StatusInProgress, items[1].Progress.Status())
}

func TestWishlist_CapabilityGate(t *testing.T) {
	svc := NewService(&fakeClient{}, backend.Capabilities{}, signedInAuth(t, "usr-1"), 20, logger.Discard().Logger)

	// Reads degrade to empty; writes fail loudly.
	items, err := svc.Wishlist(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.AddToWishlist(context.Background(), "itm-1")
	assert.ErrorIs(t, err, errors.ErrBackend)
}
