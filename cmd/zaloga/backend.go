package main

import (
	"fmt"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/docstore"
)

// openBackend opens the document backend selected by cfg. The returned
// function releases it.
func openBackend(cfg config.Config) (docstore.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		backend, err := docstore.NewSQLiteBackend(database)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		return backend, func() { database.Close() }, nil
	case config.BackendFile:
		backend, err := docstore.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	case config.BackendMemory:
		return docstore.NewMemoryBackend(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// location describes where cfg's backend keeps its documents.
func location(cfg config.Config) string {
	switch cfg.Backend {
	case config.BackendSQLite:
		return cfg.DBPath
	case config.BackendFile:
		return cfg.DataDir
	default:
		return "memory"
	}
}
