// Package settings loads, validates, and persists user preferences and
// publishes them to the rest of the app through an observable store.
package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/state"
	"github.com/shenavaapp/shenava-client/internal/store"
)

// Service owns the user settings lifecycle. Current() is the single source
// of truth the UI subscribes to; Save validates, persists, and publishes.
type Service struct {
	kv       *store.Store
	validate *validator.Validate
	current  *state.Store[*domain.UserSettings]
	logger   *slog.Logger
}

// NewService creates a settings service seeded with the persisted settings,
// or defaults when nothing has been saved yet.
func NewService(ctx context.Context, kv *store.Store, logger *slog.Logger) (*Service, error) {
	loaded, err := kv.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(loaded); err != nil {
		// A corrupt or out-of-range record falls back to defaults rather
		// than wedging startup.
		logger.Warn("persisted settings invalid, using defaults", "error", err)
		loaded = domain.NewUserSettings()
	}

	return &Service{
		kv:       kv,
		validate: v,
		current:  state.New(loaded),
		logger:   logger,
	}, nil
}

// Current returns the observable settings store.
func (s *Service) Current() *state.Store[*domain.UserSettings] {
	return s.current
}

// Get returns the current settings.
func (s *Service) Get() *domain.UserSettings {
	return s.current.Get()
}

// Save validates, persists, and publishes the given settings. On a
// validation failure nothing changes and subscribers are not notified.
func (s *Service) Save(ctx context.Context, settings *domain.UserSettings) error {
	if settings == nil {
		return errors.Validation("settings must not be nil")
	}
	if err := s.validate.Struct(settings); err != nil {
		return errors.Wrap(err, errors.CodeValidation, "invalid settings")
	}

	settings.UpdatedAt = time.Now()
	if err := s.kv.SaveSettings(ctx, settings); err != nil {
		return err
	}

	s.current.Set(settings)
	s.logger.Debug("settings saved",
		"playback_speed", settings.PlaybackSpeed,
		"theme", settings.Theme)
	return nil
}

// Update applies fn to a copy of the current settings and saves the result.
func (s *Service) Update(ctx context.Context, fn func(*domain.UserSettings)) error {
	next := *s.current.Get()
	fn(&next)
	return s.Save(ctx, &next)
}

// Reset restores defaults, persists them, and publishes.
func (s *Service) Reset(ctx context.Context) error {
	return s.Save(ctx, domain.NewUserSettings())
}
