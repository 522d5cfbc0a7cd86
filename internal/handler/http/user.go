package http

import (
	"net/http"

	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

const msgProfileUpdated = "Profile updated successfully"

func (h *Handler) getProfile(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: user}, nil
}

func (h *Handler) updateProfile(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	var req models.ProfileUpdateRequest
	if _, err = validators.Decode(r.Body, &req); err != nil {
		return Result{}, err
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: user, Message: msgProfileUpdated}, nil
}
