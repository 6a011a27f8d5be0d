package providers

import (
	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/downloads"
	"github.com/shenavaapp/shenava-client/internal/logger"
)

// ProvideLedger provides the download ledger service.
func ProvideLedger(i do.Injector) (*downloads.Ledger, error) {
	db := do.MustInvoke[*LedgerStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return downloads.New(db.Store, log.Logger), nil
}

// WatcherHandle wraps the downloads watcher with shutdown capability.
type WatcherHandle struct {
	*downloads.Watcher
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideWatcher provides the downloads-directory watcher. A watcher that
// fails to start is not fatal: verification on screen load still keeps the
// ledger honest.
func ProvideWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	ledger := do.MustInvoke[*downloads.Ledger](i)
	log := do.MustInvoke[*logger.Logger](i)

	w := downloads.NewWatcher(ledger, cfg.Storage.DownloadsPath, log.Logger)
	if err := w.Start(); err != nil {
		log.Warn("downloads watcher unavailable", "error", err)
	}

	return &WatcherHandle{Watcher: w}, nil
}
