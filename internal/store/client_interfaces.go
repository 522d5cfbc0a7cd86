package store

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository keeps the client's single login session on disk.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
