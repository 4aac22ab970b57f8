// Package store picks the slot backend named in the configuration.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/store/filestore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/todo"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the slot for cfg.Backend and a closer for its resources.
func Open(ctx context.Context, cfg *config.Config) (todo.Slot, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(cfg.DataDir), nopCloser{}, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendMemory:
		return memstore.New(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
