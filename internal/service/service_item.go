package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/models"
)

type itemService struct {
	itemRepository store.ItemRepository
	ids            IDGenerator
	logger         *logger.Logger
}

// NewItemService returns an [ItemService] without input validation; wrap it
// with [NewItemValidationService] before serving requests.
func NewItemService(itemRepository store.ItemRepository, ids IDGenerator, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		ids:            ids,
		logger:         logger,
	}
}

// ListItems returns the matching items, newest first. The result is never nil.
func (s *itemService) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	items, err := s.itemRepository.ListItems(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.ListItems").Msg("error listing items")
		return nil, apierr.Internal(err)
	}
	if items == nil {
		items = []models.Item{}
	}

	return items, nil
}

// GetItem returns the item and its owner. An id that is not a UUID cannot
// name a stored item and is reported as not found.
func (s *itemService) GetItem(ctx context.Context, id string) (models.Item, error) {
	if !utils.IsUUID(id) {
		return models.Item{}, apierr.NotFound(MsgItemNotFound)
	}

	item, err := s.itemRepository.GetItem(ctx, id)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.Item{}, apierr.NotFound(MsgItemNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.GetItem").Str("item_id", id).Msg("error getting item")
		return models.Item{}, apierr.Internal(err)
	}

	return item, nil
}

// CreateItem lists a new item owned by ownerID. Status defaults to available.
func (s *itemService) CreateItem(ctx context.Context, ownerID string, req models.ItemRequest) (models.Item, error) {
	log := logger.FromContext(ctx)

	item := models.Item{
		ID:          s.ids.Generate(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
		OwnerID:     ownerID,
	}
	if item.Status == "" {
		item.Status = models.ItemStatusAvailable
	}

	created, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Str("func", "*itemService.CreateItem").Str("owner_id", ownerID).Msg("error creating item")
		return models.Item{}, apierr.Internal(err)
	}

	log.Info().Str("item_id", created.ID).Str("owner_id", ownerID).Msg("item created")
	return s.reload(ctx, created), nil
}

// UpdateItem overwrites the fields of the item that req sets to a non-empty
// value. Only the owner may update an item.
func (s *itemService) UpdateItem(ctx context.Context, userID, id string, req models.ItemRequest) (models.Item, error) {
	item, err := s.ownedItem(ctx, userID, id)
	if err != nil {
		return models.Item{}, err
	}

	applyItemRequest(&item, req)

	err = s.itemRepository.UpdateItem(ctx, item)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.Item{}, apierr.NotFound(MsgItemNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.UpdateItem").Str("item_id", id).Msg("error updating item")
		return models.Item{}, apierr.Internal(err)
	}

	return s.reload(ctx, item), nil
}

// DeleteItem removes the item. Only the owner may delete an item.
func (s *itemService) DeleteItem(ctx context.Context, userID, id string) error {
	if _, err := s.ownedItem(ctx, userID, id); err != nil {
		return err
	}

	err := s.itemRepository.DeleteItem(ctx, id)
	if errors.Is(err, store.ErrItemNotFound) {
		return apierr.NotFound(MsgItemNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.DeleteItem").Str("item_id", id).Msg("error deleting item")
		return apierr.Internal(err)
	}

	logger.FromContext(ctx).Info().Str("item_id", id).Msg("item deleted")
	return nil
}

func (s *itemService) ownedItem(ctx context.Context, userID, id string) (models.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	if item.OwnerID != userID {
		logger.FromContext(ctx).Warn().
			Str("item_id", id).
			Str("owner_id", item.OwnerID).
			Str("user_id", userID).
			Msg("attempt to modify an item of another user")
		return models.Item{}, apierr.Authorization(MsgNotItemOwner)
	}

	return item, nil
}

// reload re-reads item so that the response carries the owner and the
// stored timestamps. If the read fails the written value is returned.
func (s *itemService) reload(ctx context.Context, item models.Item) models.Item {
	stored, err := s.itemRepository.GetItem(ctx, item.ID)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("item_id", item.ID).Msg("could not reload item after write")
		return item
	}
	return stored
}

func applyItemRequest(item *models.Item, req models.ItemRequest) {
	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.Status != "" {
		item.Status = req.Status
	}
}
