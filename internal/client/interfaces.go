// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/models"
)

// SessionManager is the client-side token lifecycle: it persists the login,
// restores it on start and forgets it on logout or when the server rejects
// the token.
type SessionManager interface {
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Restore(ctx context.Context) (models.Session, error)
	RefreshUser(ctx context.Context) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	Logout(ctx context.Context) error
	Authorized(ctx context.Context, call func(ctx context.Context) error) error
	IsAuthenticated() bool
	CurrentUser() models.User
}
