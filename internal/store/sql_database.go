package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/retry"
	"github.com/MKhiriev/zero-waste-market/migrations"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is a database handle shared by the repositories. Reads made through
// [DB.retry] are re-run with backoff when the classifier marks the failure
// as transient. Writes go through [DB.retryWrite], which re-runs only when
// the failed attempt is known to have left nothing behind.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	retryPolicy        retry.Policy
	logger             *logger.Logger
}

// Migrate applies the server schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// MigrateClient applies the client session schema.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

func (db *DB) retry(ctx context.Context, op func(ctx context.Context) error) error {
	return db.run(ctx, db.isRetryable, op)
}

// retryWrite is retry for statements that must not apply twice. A lost
// connection may hide a commit, so only rollbacks and refusals that happen
// before the statement runs are retried.
func (db *DB) retryWrite(ctx context.Context, op func(ctx context.Context) error) error {
	return db.run(ctx, isRetryableWrite, op)
}

func (db *DB) run(ctx context.Context, retryable func(error) bool, op func(ctx context.Context) error) error {
	policy := db.retryPolicy
	policy.Retryable = retryable
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.FromContext(ctx).Warn().Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying database call")
	}
	return retry.Run(ctx, policy, op)
}

func (db *DB) isRetryable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

func isRetryableWrite(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && NothingApplied(pgErr)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
