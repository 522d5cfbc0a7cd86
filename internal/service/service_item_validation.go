package service

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

// ItemServiceWrapper defines middleware composition for ItemService.
// Implementations wrap an existing ItemService to add behavior such as
// validation.
type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService
}

// ItemValidationService checks item payloads before they reach the wrapped
// [ItemService]. Reads pass straight through.
type ItemValidationService struct {
	inner     ItemService
	validator validators.Validator
}

func NewItemValidationService(validator validators.Validator) ItemServiceWrapper {
	return &ItemValidationService{
		validator: validator,
	}
}

func (v *ItemValidationService) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	return v.inner.ListItems(ctx, filter)
}

func (v *ItemValidationService) GetItem(ctx context.Context, id string) (models.Item, error) {
	return v.inner.GetItem(ctx, id)
}

// CreateItem requires a title in addition to the rules shared with updates.
func (v *ItemValidationService) CreateItem(ctx context.Context, ownerID string, req models.ItemRequest) (models.Item, error) {
	if validators.IsBlank(req.Title) {
		return models.Item{}, apierr.Validation(validators.MsgMissingRequiredFields, map[string]string{"title": apierr.MsgRequiredField})
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Item{}, err
	}

	return v.inner.CreateItem(ctx, ownerID, req)
}

func (v *ItemValidationService) UpdateItem(ctx context.Context, userID, id string, req models.ItemRequest) (models.Item, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Item{}, err
	}

	return v.inner.UpdateItem(ctx, userID, id, req)
}

func (v *ItemValidationService) DeleteItem(ctx context.Context, userID, id string) error {
	return v.inner.DeleteItem(ctx, userID, id)
}

func (v *ItemValidationService) Wrap(wrapped ItemService) ItemService {
	v.inner = wrapped
	return v
}
