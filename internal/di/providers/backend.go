package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/ratelimit"
)

// ProvideAuth provides the session-backed auth state.
func ProvideAuth(i do.Injector) (*backend.Auth, error) {
	kv := do.MustInvoke[*KVStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backend.NewAuth(kv.Store, log.Logger), nil
}

// ProvideBackendClient provides the rate-limited row-API client.
func ProvideBackendClient(i do.Injector) (backend.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	auth := do.MustInvoke[*backend.Auth](i)

	limiter := ratelimit.New(cfg.Backend.QueryRPS, int(cfg.Backend.QueryRPS)+1)
	client := backend.NewRESTClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, auth, limiter, log.Logger).
		WithTimeout(cfg.Backend.Timeout)

	return client, nil
}

// ProvideCapabilities resolves what this backend deployment supports. Runs
// once at startup; the result is immutable for the process lifetime.
func ProvideCapabilities(i do.Injector) (backend.Capabilities, error) {
	client := do.MustInvoke[backend.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	caps := backend.ResolveCapabilities(context.Background(), client, log.Logger)
	log.Info("Backend capabilities resolved",
		"secondary_titles", caps.SecondaryTitles,
		"ratings", caps.Ratings,
		"wishlist", caps.Wishlist,
	)
	return caps, nil
}
