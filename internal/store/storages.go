package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/retry"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository UserRepository
	ItemRepository ItemRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and wires the
// repositories. Transient failures of the initial ping and of every query
// are retried according to cfg.Retry.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	policy := retry.Policy{
		MaxRetries: uint64(cfg.Retry.MaxRetries),
		BaseDelay:  cfg.Retry.BaseDelay,
	}

	db, err := NewConnectPostgres(ctx, cfg.Storage.DB.DSN, policy, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		ItemRepository: NewItemRepository(db, logger),
		db:             db,
	}, nil
}

// Ping reports whether the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
