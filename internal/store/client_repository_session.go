package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/Masterminds/squirrel"
)

const (
	sessionTable = "session"
	// the table holds at most one row
	sessionRowID = 1
)

type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository returns a [SessionRepository] stored in db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

// SaveSession replaces the stored session with session.
func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("error encoding session user: %w", err)
	}
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now()
	}

	query, args, err := squirrel.Insert(sessionTable).
		Columns("id", "token", "user_json", "saved_at").
		Values(sessionRowID, session.Token, string(userJSON), session.SavedAt.UnixMilli()).
		Suffix("ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_json = excluded.user_json, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.SaveSession").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LoadSession returns the stored session or [ErrSessionNotFound].
func (r *sessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	query, args, err := squirrel.Select("token", "user_json", "saved_at").
		From(sessionTable).
		Where(squirrel.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session  models.Session
		userJSON string
		savedAt  int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&session.Token, &userJSON, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.LoadSession").Msg("error loading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = json.Unmarshal([]byte(userJSON), &session.User); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	session.SavedAt = time.UnixMilli(savedAt)

	return session, nil
}

// ClearSession deletes the stored session. Clearing an empty store is not
// an error.
func (r *sessionRepository) ClearSession(ctx context.Context) error {
	query, args, err := squirrel.Delete(sessionTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.ClearSession").Msg("error clearing session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
