package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
)

// ClientStorages groups the client-side repositories.
type ClientStorages struct {
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens the SQLite file named by cfg.DSN, creating it if
// needed, applies the client migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
