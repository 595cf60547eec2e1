package config

import (
	"fmt"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/kv"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "tada.db"

// OpenStore returns the key-value store for cfg.Backend and a func
// releasing it.
func OpenStore(cfg *Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case BackendMemory:
		return kv.NewMemory(), noop, nil
	case BackendSQLite:
		s, err := sqlitestore.Open(filepath.Join(cfg.DataDir, SQLiteFileName))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendJSON, "":
		s, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
