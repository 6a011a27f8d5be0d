package domain

import "time"

// Theme selects the app color scheme.
type Theme string

// Themes.
const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// UserSettings holds user-facing preferences persisted on the device.
type UserSettings struct {
	PlaybackSpeed   float64 `json:"playback_speed" validate:"gte=0.5,lte=3"`
	SkipForwardSec  int     `json:"skip_forward_sec" validate:"gte=5,lte=90"`
	SkipBackwardSec int     `json:"skip_backward_sec" validate:"gte=5,lte=90"`
	Theme           Theme   `json:"theme" validate:"oneof=system light dark"`

	// Per-kind visibility of bookstore tabs.
	ShowMusic    bool `json:"show_music"`
	ShowPodcasts bool `json:"show_podcasts"`
	ShowArticles bool `json:"show_articles"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserSettings returns settings with defaults.
func NewUserSettings() *UserSettings {
	return &UserSettings{
		PlaybackSpeed:   1.0,
		SkipForwardSec:  30,
		SkipBackwardSec: 10,
		Theme:           ThemeSystem,
		ShowMusic:       true,
		ShowPodcasts:    true,
		ShowArticles:    true,
		UpdatedAt:       time.Now(),
	}
}
