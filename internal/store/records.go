package store

import (
	"context"
	"errors"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/id"
)

// historyRecord is the persisted search-history list, most recent first.
type historyRecord struct {
	Entries []domain.SearchEntry `json:"entries"`
}

// deviceRecord is the per-install identity.
type deviceRecord struct {
	DeviceID string `json:"device_id"`
}

// GetSettings returns the persisted user settings, or defaults when nothing
// has been saved yet.
func (s *Store) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	settings, err := s.settings.Get(ctx, currentKey)
	if errors.Is(err, ErrNotFound) {
		return domain.NewUserSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings persists the user settings.
func (s *Store) SaveSettings(ctx context.Context, settings *domain.UserSettings) error {
	return s.settings.Put(ctx, currentKey, settings)
}

// GetSession returns the persisted auth session.
// Returns ErrNotFound when signed out.
func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	return s.session.Get(ctx, currentKey)
}

// SaveSession persists the auth session.
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	return s.session.Put(ctx, currentKey, session)
}

// DeleteSession removes the auth session. Idempotent.
func (s *Store) DeleteSession(ctx context.Context) error {
	return s.session.Delete(ctx, currentKey)
}

// GetSearchHistory returns remembered queries, most recent first.
func (s *Store) GetSearchHistory(ctx context.Context) ([]domain.SearchEntry, error) {
	rec, err := s.history.Get(ctx, currentKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Entries, nil
}

// SaveSearchHistory persists the query list, most recent first.
func (s *Store) SaveSearchHistory(ctx context.Context, entries []domain.SearchEntry) error {
	return s.history.Put(ctx, currentKey, &historyRecord{Entries: entries})
}

// ClearSearchHistory removes all remembered queries. Idempotent.
func (s *Store) ClearSearchHistory(ctx context.Context) error {
	return s.history.Delete(ctx, currentKey)
}

// DeviceID returns the per-install identifier, generating and persisting it
// on first call. The backend uses it to tell playback devices apart.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	rec, err := s.device.Get(ctx, currentKey)
	if err == nil {
		return rec.DeviceID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	rec = &deviceRecord{DeviceID: id.NewDeviceID()}
	if err := s.device.Put(ctx, currentKey, rec); err != nil {
		return "", err
	}
	return rec.DeviceID, nil
}
