// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the marketplace API.
//
// [ServerAdapter] decouples the client from HTTP. The REST implementation
// ([NewHTTPServerAdapter]) unwraps the response envelope and turns error
// envelopes into [*ResponseError] values that match the sentinels in
// errors.go, so callers can write errors.Is(err, adapter.ErrUnauthorized).
package adapter

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// marketplace API. Implementations own serialisation, the bearer header and
// the mapping of error responses to this package's sentinels.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. An empty token makes subsequent requests anonymous.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, req models.RegisterRequest) (models.PublicUser, error)

	// Login exchanges credentials for a token and stores the token via
	// SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout notifies the server. The held token is forgotten whatever the
	// outcome.
	Logout(ctx context.Context) error

	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.User, error)

	// ListItems lists every item matching filter. filter.OwnerID is ignored;
	// use ListUserItems for the caller's own listings.
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	CreateItem(ctx context.Context, req models.ItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, id string, req models.ItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListUserItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)

	// GetVersion reports the server's build information.
	GetVersion(ctx context.Context) (models.BuildInfo, error)
}
