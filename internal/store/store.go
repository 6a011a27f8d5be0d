// Package store provides the local key-value persistence layer. It holds
// the small on-device records the client owns: user settings, search
// history, and the auth session. The download ledger lives in the relational
// store under store/sqlite.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/shenavaapp/shenava-client/internal/domain"
)

// Key prefixes for typed records.
const (
	prefixSettings = "settings:"
	prefixSession  = "session:"
	prefixHistory  = "history:"
	prefixDevice   = "device:"
)

// currentKey is the record ID for per-install singletons.
const currentKey = "current"

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	settings *Entity[domain.UserSettings]
	session  *Entity[domain.Session]
	history  *Entity[historyRecord]
	device   *Entity[deviceRecord]
}

// Open opens (or creates) the key-value store at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Badger's internal logging is noisy; slog covers us.
	opts.SyncWrites = true // Settings and session loss on crash is not acceptable.
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}
	s.settings = NewEntity[domain.UserSettings](s, prefixSettings)
	s.session = NewEntity[domain.Session](s, prefixSession)
	s.history = NewEntity[historyRecord](s, prefixHistory)
	s.device = NewEntity[deviceRecord](s, prefixDevice)

	if logger != nil {
		logger.Info("key-value store opened", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing key-value store")
	}
	return s.db.Close()
}
