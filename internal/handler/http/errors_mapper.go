package http

import (
	"errors"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/service"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
)

// sentinelErrors translates well-known sentinels that escaped the service
// layer untranslated. Services normally return an [*apierr.Error] already.
var sentinelErrors = []struct {
	target error
	build  func() *apierr.Error
}{
	{store.ErrUserNotFound, func() *apierr.Error { return apierr.NotFound(service.MsgUserNotFound) }},
	{store.ErrItemNotFound, func() *apierr.Error { return apierr.NotFound(service.MsgItemNotFound) }},
	{store.ErrUserAlreadyExists, func() *apierr.Error { return apierr.Conflict(service.MsgUserExists, apierr.CodeUserExists) }},
	{validators.ErrDecodingPayload, func() *apierr.Error { return apierr.Validation(validators.MsgInvalidPayload, nil) }},
	{ErrEmptyAuthorizationHeader, func() *apierr.Error { return apierr.Authentication(MsgNoToken) }},
}

// toAPIError returns the [*apierr.Error] in err's chain, or the variant its
// sentinel maps to. Anything else is an internal error carrying err.
func toAPIError(err error) *apierr.Error {
	if apiErr, ok := apierr.As(err); ok {
		return apiErr
	}

	for _, s := range sentinelErrors {
		if errors.Is(err, s.target) {
			return s.build().WithCause(err)
		}
	}

	return apierr.Internal(err)
}
