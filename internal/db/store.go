// Package db opens the configured product store.
package db

import (
	"fmt"

	"github.com/rogerio-castellano/inventory-cli/internal/config"
	"github.com/rogerio-castellano/inventory-cli/internal/repo"
)

// Store bundles the product repository with the handle that backs it.
type Store struct {
	Products repo.ProductRepository
	close    func() error
}

// Close releases the underlying connection, if any.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.Driver.
func Open(cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		gdb, err := ConnectSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		return &Store{Products: repo.NewSQLiteProductRepository(gdb), close: sqlDB.Close}, nil

	case config.DriverPostgres:
		sqlDB, err := ConnectPostgres(cfg.URL)
		if err != nil {
			return nil, err
		}
		return &Store{Products: repo.NewPostgresProductRepository(sqlDB), close: sqlDB.Close}, nil

	case config.DriverMemory:
		return &Store{Products: repo.NewInMemoryProductRepository()}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
