package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
)

func TestToAPIError(t *testing.T) {
	conflict := apierr.Conflict("taken", apierr.CodeUserExists)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error passes through", conflict, http.StatusConflict, apierr.CodeUserExists},
		{"wrapped api error", fmt.Errorf("outer: %w", apierr.Authorization("")), http.StatusForbidden, apierr.CodeAuthorization},
		{"user not found", fmt.Errorf("lookup: %w", store.ErrUserNotFound), http.StatusNotFound, apierr.CodeNotFound},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound, apierr.CodeNotFound},
		{"duplicate user", store.ErrUserAlreadyExists, http.StatusConflict, apierr.CodeUserExists},
		{"undecodable payload", validators.ErrDecodingPayload, http.StatusBadRequest, apierr.CodeValidation},
		{"missing header", ErrEmptyAuthorizationHeader, http.StatusUnauthorized, apierr.CodeAuthentication},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, apierr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAPIError(tt.err)

			assert.Equal(t, tt.wantStatus, got.Status())
			assert.Equal(t, tt.wantCode, got.Code())
		})
	}
}

func TestToAPIError_KeepsCause(t *testing.T) {
	err := fmt.Errorf("lookup: %w", store.ErrItemNotFound)

	got := toAPIError(err)

	assert.ErrorIs(t, got, store.ErrItemNotFound)
}
