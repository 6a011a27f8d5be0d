// Package di provides dependency injection configuration for the Shenava client core.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/articles"
	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/catalog"
	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/covercache"
	"github.com/shenavaapp/shenava-client/internal/di/providers"
	"github.com/shenavaapp/shenava-client/internal/downloads"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/search"
	"github.com/shenavaapp/shenava-client/internal/settings"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideKVStore)
	do.Provide(injector, providers.ProvideLedgerStore)
	do.Provide(injector, providers.ProvideCoverCache)

	// Backend layer
	do.Provide(injector, providers.ProvideAuth)
	do.Provide(injector, providers.ProvideBackendClient)
	do.Provide(injector, providers.ProvideCapabilities)

	// Downloads
	do.Provide(injector, providers.ProvideLedger)
	do.Provide(injector, providers.ProvideWatcher)

	// App services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideSearchDebouncer)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvideArticleService)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization so
// startup failures surface immediately instead of on first use.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)

	_ = do.MustInvoke[*providers.KVStoreHandle](injector)
	_ = do.MustInvoke[*providers.LedgerStoreHandle](injector)
	_ = do.MustInvoke[*covercache.Cache](injector)

	_ = do.MustInvoke[*backend.Auth](injector)
	_ = do.MustInvoke[backend.Client](injector)
	_ = do.MustInvoke[backend.Capabilities](injector)

	_ = do.MustInvoke[*downloads.Ledger](injector)
	_ = do.MustInvoke[*providers.WatcherHandle](injector)

	_ = do.MustInvoke[*catalog.Service](injector)
	_ = do.MustInvoke[*search.Service](injector)
	_ = do.MustInvoke[*search.Debouncer](injector)
	_ = do.MustInvoke[*settings.Service](injector)
	_ = do.MustInvoke[*articles.Service](injector)

	return nil
}
