package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/retry"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewConnectPostgres opens a pgx-backed connection pool and pings it,
// retrying the ping with policy so that the server survives a database
// that is still starting up.
func NewConnectPostgres(ctx context.Context, dsn string, policy retry.Policy, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	// ping database
	pingPolicy := policy
	pingPolicy.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).
			Str("func", "NewConnectPostgres").Msg("database is not reachable yet")
	}
	if err = retry.Run(ctx, pingPolicy, conn.PingContext); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		logger:             log,
		retryPolicy:        policy,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
