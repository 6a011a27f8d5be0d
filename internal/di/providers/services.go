package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/articles"
	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/catalog"
	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/search"
	"github.com/shenavaapp/shenava-client/internal/settings"
)

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*catalog.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client := do.MustInvoke[backend.Client](i)
	caps := do.MustInvoke[backend.Capabilities](i)
	auth := do.MustInvoke[*backend.Auth](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewService(client, caps, auth, cfg.Backend.PageSize, log.Logger), nil
}

// ProvideSearchService provides the remote search and history service.
func ProvideSearchService(i do.Injector) (*search.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client := do.MustInvoke[backend.Client](i)
	kv := do.MustInvoke[*KVStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return search.NewService(client, kv.Store, cfg.Search.HistoryLimit, log.Logger), nil
}

// ProvideSearchDebouncer provides the debouncer driving search-as-you-type.
func ProvideSearchDebouncer(i do.Injector) (*search.Debouncer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return search.NewDebouncer(cfg.Search.Debounce), nil
}

// ProvideSettingsService provides the user settings service.
func ProvideSettingsService(i do.Injector) (*settings.Service, error) {
	kv := do.MustInvoke[*KVStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return settings.NewService(context.Background(), kv.Store, log.Logger)
}

// ProvideArticleService provides the article rendering service.
func ProvideArticleService(i do.Injector) (*articles.Service, error) {
	client := do.MustInvoke[backend.Client](i)
	return articles.NewService(client), nil
}
