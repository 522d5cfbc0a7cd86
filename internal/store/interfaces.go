package store

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists marketplace accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// ItemRepository persists item listings. Reads populate [models.Item.Owner].
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, id string) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
