package service

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers accounts and manages the access token lifecycle.
//
// Every error it returns is an [apierr.Error] ready to be rendered.
type AuthService interface {
	// Register validates req, hashes the password and creates the account.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login checks the credentials and issues a signed access token.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// ParseToken verifies signature, expiry, issuer and audience of a raw
	// token. Any failure is reported as the same authentication error.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ItemService manages item listings. Mutations are restricted to the
// listing owner.
type ItemService interface {
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	CreateItem(ctx context.Context, ownerID string, req models.ItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, userID, id string, req models.ItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, userID, id string) error
}

// UserService reads and edits the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (models.User, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.BuildInfo
}

// IDGenerator issues identifiers for new rows.
type IDGenerator interface {
	Generate() string
}
