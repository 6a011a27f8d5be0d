package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/covercache"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/store"
	"github.com/shenavaapp/shenava-client/internal/store/sqlite"
)

// KVStoreHandle wraps the KV store with shutdown capability.
type KVStoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *KVStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideKVStore provides the key-value store for settings, session, and
// search history.
func ProvideKVStore(i do.Injector) (*KVStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	kvPath := filepath.Join(cfg.Storage.DataPath, "kv")
	kv, err := store.Open(kvPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("KV store initialized", "path", kvPath)
	return &KVStoreHandle{Store: kv}, nil
}

// LedgerStoreHandle wraps the download ledger database with shutdown capability.
type LedgerStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *LedgerStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideLedgerStore provides the download ledger database.
func ProvideLedgerStore(i do.Injector) (*LedgerStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.DataPath, "downloads.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Download ledger initialized", "path", dbPath)
	return &LedgerStoreHandle{Store: db}, nil
}

// ProvideCoverCache provides the disk-backed cover cache.
func ProvideCoverCache(i do.Injector) (*covercache.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return covercache.New(cfg.Storage.CachePath, log.Logger)
}
