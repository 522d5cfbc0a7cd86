package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_StatusCodeAndDefaults(t *testing.T) {
	tests := []struct {
		name        string
		err         *Error
		wantKind    Kind
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation",
			err:         Validation("", nil),
			wantKind:    KindValidation,
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeValidation,
			wantMessage: MsgValidation,
		},
		{
			name:        "authentication default message",
			err:         Authentication(""),
			wantKind:    KindAuthentication,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    CodeAuthentication,
			wantMessage: "Authentication required",
		},
		{
			name:        "authorization custom message",
			err:         Authorization("Not authorized"),
			wantKind:    KindAuthorization,
			wantStatus:  http.StatusForbidden,
			wantCode:    CodeAuthorization,
			wantMessage: "Not authorized",
		},
		{
			name:        "not found",
			err:         NotFound(""),
			wantKind:    KindNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "Resource not found",
		},
		{
			name:        "conflict",
			err:         Conflict("An account with this email already exists", CodeUserExists),
			wantKind:    KindConflict,
			wantStatus:  http.StatusConflict,
			wantCode:    CodeUserExists,
			wantMessage: "An account with this email already exists",
		},
		{
			name:        "rate limit",
			err:         RateLimit(),
			wantKind:    KindRateLimit,
			wantStatus:  http.StatusTooManyRequests,
			wantCode:    CodeRateLimit,
			wantMessage: "Rate limit exceeded",
		},
		{
			name:        "generic defaults to 500",
			err:         New("boom", 0, ""),
			wantKind:    KindInternal,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    CodeInternal,
			wantMessage: "boom",
		},
		{
			name:        "generic with caller status",
			err:         New("teapot", http.StatusTeapot, "TEAPOT"),
			wantKind:    KindInternal,
			wantStatus:  http.StatusTeapot,
			wantCode:    "TEAPOT",
			wantMessage: "teapot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind())
			assert.Equal(t, tt.wantStatus, tt.err.Status())
			assert.Equal(t, tt.wantCode, tt.err.Code())
			assert.Equal(t, tt.wantMessage, tt.err.Message())
		})
	}
}

func TestValidation_FieldsAreCopied(t *testing.T) {
	fields := map[string]string{"email": "Please enter a valid email address"}
	err := Validation("Please fix the following errors:", fields)

	fields["email"] = "mutated"
	got := err.Fields()
	assert.Equal(t, "Please enter a valid email address", got["email"])

	got["email"] = "mutated again"
	assert.Equal(t, "Please enter a valid email address", err.Fields()["email"])
}

func TestValidation_EmptyFieldsIsNil(t *testing.T) {
	assert.Nil(t, Validation("x", map[string]string{}).Fields())
}

func TestAs_FindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("Item not found"))

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, apiErr.Kind())
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection refused", err.Message())
	assert.Equal(t, http.StatusInternalServerError, err.Status())
}

func TestWithCause_DoesNotMutateOriginal(t *testing.T) {
	base := Authentication("Invalid or expired token")
	cause := errors.New("token is expired")

	withCause := base.WithCause(cause)

	assert.NoError(t, base.Unwrap())
	assert.ErrorIs(t, withCause, cause)
	assert.Equal(t, base.Message(), withCause.Message())
	assert.Contains(t, withCause.Error(), "token is expired")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "rate_limit", KindRateLimit.String())
	assert.Equal(t, "internal", Kind(99).String())
}
