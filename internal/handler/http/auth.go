package http

import (
	"net/http"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

const (
	msgRegistered = "User registered successfully"
	msgLoggedIn   = "Login successful"
)

func (h *Handler) register(r *http.Request) (Result, error) {
	var req models.RegisterRequest
	if _, err := validators.Decode(r.Body, &req, "name", "email", "password"); err != nil {
		return Result{}, err
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		return Result{}, err
	}

	return Result{Status: http.StatusCreated, Data: user.Registered(), Message: msgRegistered}, nil
}

func (h *Handler) login(r *http.Request) (Result, error) {
	var req models.LoginRequest
	if _, err := validators.Decode(r.Body, &req, "email", "password"); err != nil {
		return Result{}, err
	}

	resp, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: resp, Message: msgLoggedIn}, nil
}

// logout acknowledges the client. Tokens are stateless, so the client
// forgets its token and nothing is revoked server-side.
func (h *Handler) logout(r *http.Request) (Result, error) {
	return Result{Message: MsgLoggedOut}, nil
}

// currentUserID returns the id the auth middleware put into the context.
func currentUserID(r *http.Request) (string, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", apierr.Authentication(MsgNoToken)
	}
	return userID, nil
}
