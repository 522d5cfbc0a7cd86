package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "phone",
	"street", "city", "state", "zip_code", "country",
	"avatar", "bio", "is_verified", "rating", "total_transactions",
	"created_at", "updated_at",
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and profile updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns it with the database timestamps.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := squirrel.Insert(user.TableName()).
		Columns(userColumns[:15]...).
		Values(
			user.ID, user.Name, user.Email, user.PasswordHash, user.Phone,
			user.Address.Street, user.Address.City, user.Address.State, user.Address.ZipCode, user.Address.Country,
			user.Avatar, user.Bio, user.IsVerified, user.Rating, user.TotalTransactions,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retryWrite(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return user, nil
}

// FindUserByEmail returns the user whose (lower-cased) email matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", squirrel.Eq{"email": email})
}

// FindUserByID returns the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", squirrel.Eq{"id": id})
}

// UpdateUser overwrites the profile fields of user (name, phone, address,
// avatar, bio) and returns the stored row.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := squirrel.Update(user.TableName()).
		SetMap(map[string]any{
			"name":       user.Name,
			"phone":      user.Phone,
			"street":     user.Address.Street,
			"city":       user.Address.City,
			"state":      user.Address.State,
			"zip_code":   user.Address.ZipCode,
			"country":    user.Address.Country,
			"avatar":     user.Avatar,
			"bio":        user.Bio,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING " + columnList(userColumns)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	err = r.db.retryWrite(ctx, func(ctx context.Context) error {
		return scanUser(r.db.QueryRowContext(ctx, query, args...), &updated)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where squirrel.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := squirrel.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	err = r.db.retry(ctx, func(ctx context.Context) error {
		return scanUser(r.db.QueryRowContext(ctx, query, args...), &found)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

func scanUser(row rowScanner, u *models.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.Address.Street, &u.Address.City, &u.Address.State, &u.Address.ZipCode, &u.Address.Country,
		&u.Avatar, &u.Bio, &u.IsVerified, &u.Rating, &u.TotalTransactions,
		&u.CreatedAt, &u.UpdatedAt,
	)
}
