package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/Masterminds/squirrel"
)

// itemSelectColumns reads an item joined with its owner.
var itemSelectColumns = []string{
	"i.id", "i.title", "i.description", "i.category", "i.location",
	"i.image_url", "i.status", "i.owner_id", "i.created_at", "i.updated_at",
	"u.id", "u.name", "u.email", "u.created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateItem inserts item and returns it with the database timestamps.
// Owner is not populated.
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := squirrel.Insert(item.TableName()).
		Columns("id", "title", "description", "category", "location", "image_url", "status", "owner_id").
		Values(item.ID, item.Title, item.Description, item.Category, item.Location, item.ImageURL, string(item.Status), item.OwnerID).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retryWrite(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&item.CreatedAt, &item.UpdatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error inserting item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

// GetItem returns the item with the given id and its owner.
func (r *itemRepository) GetItem(ctx context.Context, id string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectItems().
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	err = r.db.retry(ctx, func(ctx context.Context) error {
		return scanItem(r.db.QueryRowContext(ctx, query, args...), &item)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItem").Msg("error querying item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// ListItems returns the items matching filter, newest first. It never
// returns a nil slice.
func (r *itemRepository) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	builder := selectItems().OrderBy("i.created_at DESC")
	if filter.OwnerID != "" {
		builder = builder.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"i.category": filter.Category})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"i.status": string(filter.Status)})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"i.title": pattern},
			squirrel.ILike{"i.description": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var items []models.Item
	err = r.db.retry(ctx, func(ctx context.Context) error {
		items = make([]models.Item, 0)

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var item models.Item
			if err := scanItem(rows, &item); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ListItems").Msg("error listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return items, nil
}

// UpdateItem overwrites the editable fields of item.
func (r *itemRepository) UpdateItem(ctx context.Context, item models.Item) error {
	query, args, err := squirrel.Update(item.TableName()).
		Set("title", item.Title).
		Set("description", item.Description).
		Set("category", item.Category).
		Set("location", item.Location).
		Set("image_url", item.ImageURL).
		Set("status", string(item.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*itemRepository.UpdateItem", query, args)
}

// DeleteItem removes the item with the given id.
func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	query, args, err := squirrel.Delete(models.Item{}.TableName()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*itemRepository.DeleteItem", query, args)
}

// execAffectingOne runs a DML statement and maps "no rows affected" to
// [ErrItemNotFound].
func (r *itemRepository) execAffectingOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.db.retryWrite(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func selectItems() squirrel.SelectBuilder {
	return squirrel.Select(itemSelectColumns...).
		From("items i").
		Join("users u ON u.id = i.owner_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanItem(row rowScanner, item *models.Item) error {
	var (
		owner  models.ItemOwner
		status string
	)
	err := row.Scan(
		&item.ID, &item.Title, &item.Description, &item.Category, &item.Location,
		&item.ImageURL, &status, &item.OwnerID, &item.CreatedAt, &item.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt,
	)
	if err != nil {
		return err
	}

	item.Status = models.ItemStatus(status)
	item.Owner = &owner
	return nil
}
