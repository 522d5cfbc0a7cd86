package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

const (
	msgItemCreated = "Item created successfully"
	msgItemUpdated = "Item updated successfully"
)

// listItems serves GET /api/items. The optional query parameters category,
// status and q narrow the listing.
func (h *Handler) listItems(r *http.Request) (Result, error) {
	filter, err := itemFilterFromQuery(r)
	if err != nil {
		return Result{}, err
	}

	items, err := h.services.ItemService.ListItems(r.Context(), filter)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: items}, nil
}

func (h *Handler) getItem(r *http.Request) (Result, error) {
	item, err := h.services.ItemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return Result{}, err
	}

	return Result{Data: item}, nil
}

func (h *Handler) createItem(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	var req models.ItemRequest
	if _, err = validators.Decode(r.Body, &req, "title"); err != nil {
		return Result{}, err
	}

	item, err := h.services.ItemService.CreateItem(r.Context(), userID, req)
	if err != nil {
		return Result{}, err
	}

	return Result{Status: http.StatusCreated, Data: item, Message: msgItemCreated}, nil
}

func (h *Handler) updateItem(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	var req models.ItemRequest
	if _, err = validators.Decode(r.Body, &req); err != nil {
		return Result{}, err
	}

	item, err := h.services.ItemService.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: item, Message: msgItemUpdated}, nil
}

func (h *Handler) deleteItem(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	if err = h.services.ItemService.DeleteItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		return Result{}, err
	}

	return Result{Message: MsgItemDeleted}, nil
}

// listUserItems serves GET /api/user/items: the caller's own listings.
func (h *Handler) listUserItems(r *http.Request) (Result, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return Result{}, err
	}

	filter, err := itemFilterFromQuery(r)
	if err != nil {
		return Result{}, err
	}
	filter.OwnerID = userID

	items, err := h.services.ItemService.ListItems(r.Context(), filter)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: items}, nil
}

func itemFilterFromQuery(r *http.Request) (models.ItemFilter, error) {
	query := r.URL.Query()

	filter := models.ItemFilter{
		Category: validators.SanitizeString(query.Get("category")),
		Status:   models.ItemStatus(validators.SanitizeString(query.Get("status"))),
		Search:   validators.SanitizeString(query.Get("q")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return models.ItemFilter{}, apierr.Validation(MsgInvalidStatus, map[string]string{"status": MsgInvalidStatus})
	}

	return filter, nil
}
