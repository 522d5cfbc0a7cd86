package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/mock"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testItemID  = "0190c8a5-0000-7000-8000-000000000001"
	testOwnerID = "0190c8a4-7b9e-7cc2-9d1e-3f1a2b3c4d5e"
	testOtherID = "0190c8a4-7b9e-7cc2-9d1e-000000000000"
)

func newTestItemSvc(t *testing.T) (ItemService, *mock.MockItemRepository, *mock.MockIDGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockItemRepository(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)

	return NewItemService(repo, ids, logger.Nop()), repo, ids
}

func storedItem() models.Item {
	return models.Item{
		ID:          testItemID,
		Title:       "Oak bookshelf",
		Description: "Solid oak, five shelves",
		Category:    "Furniture",
		Status:      models.ItemStatusAvailable,
		OwnerID:     testOwnerID,
		Owner:       &models.ItemOwner{ID: testOwnerID, Name: "Ann"},
	}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func TestItemService_ListItems(t *testing.T) {
	svc, repo, _ := newTestItemSvc(t)
	filter := models.ItemFilter{Category: "Books"}

	repo.EXPECT().ListItems(gomock.Any(), filter).Return(nil, nil)

	items, err := svc.ListItems(context.Background(), filter)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_ListItems_StorageFailure(t *testing.T) {
	svc, repo, _ := newTestItemSvc(t)
	repo.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

	_, err := svc.ListItems(context.Background(), models.ItemFilter{})
	requireAPIError(t, err, apierr.KindInternal)
}

func TestItemService_GetItem(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)

		item, err := svc.GetItem(context.Background(), testItemID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", item.Owner.Name)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		svc, _, _ := newTestItemSvc(t)

		_, err := svc.GetItem(context.Background(), "not-a-uuid")
		apiErr := requireAPIError(t, err, apierr.KindNotFound)
		assert.Equal(t, MsgItemNotFound, apiErr.Message())
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(models.Item{}, store.ErrItemNotFound)

		_, err := svc.GetItem(context.Background(), testItemID)
		requireAPIError(t, err, apierr.KindNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(models.Item{}, store.ErrExecutingQuery)

		_, err := svc.GetItem(context.Background(), testItemID)
		requireAPIError(t, err, apierr.KindInternal)
		assert.ErrorIs(t, err, store.ErrExecutingQuery)
	})
}

// ── CreateItem ───────────────────────────────────────────────────────────────

func TestItemService_CreateItem(t *testing.T) {
	svc, repo, ids := newTestItemSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		ids.EXPECT().Generate().Return(testItemID),
		repo.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, item models.Item) (models.Item, error) {
				assert.Equal(t, testItemID, item.ID)
				assert.Equal(t, testOwnerID, item.OwnerID)
				assert.Equal(t, models.ItemStatusAvailable, item.Status)
				return item, nil
			},
		),
		repo.EXPECT().GetItem(ctx, testItemID).Return(storedItem(), nil),
	)

	item, err := svc.CreateItem(ctx, testOwnerID, models.ItemRequest{Title: "Oak bookshelf", Category: "Furniture"})
	require.NoError(t, err)
	require.NotNil(t, item.Owner)
	assert.Equal(t, testOwnerID, item.Owner.ID)
}

func TestItemService_CreateItem_ReloadFailureReturnsWrittenItem(t *testing.T) {
	svc, repo, ids := newTestItemSvc(t)

	ids.EXPECT().Generate().Return(testItemID)
	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.Item) (models.Item, error) { return item, nil },
	)
	repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(models.Item{}, errors.New("replica lag"))

	item, err := svc.CreateItem(context.Background(), testOwnerID, models.ItemRequest{Title: "Lamp", Status: models.ItemStatusPending})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", item.Title)
	assert.Equal(t, models.ItemStatusPending, item.Status)
	assert.Nil(t, item.Owner)
}

func TestItemService_CreateItem_StorageFailure(t *testing.T) {
	svc, repo, ids := newTestItemSvc(t)

	ids.EXPECT().Generate().Return(testItemID)
	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(models.Item{}, store.ErrExecutingStatement)

	_, err := svc.CreateItem(context.Background(), testOwnerID, models.ItemRequest{Title: "Lamp"})
	requireAPIError(t, err, apierr.KindInternal)
}

// ── UpdateItem ───────────────────────────────────────────────────────────────

func TestItemService_UpdateItem_OverwritesOnlyProvidedFields(t *testing.T) {
	svc, repo, _ := newTestItemSvc(t)
	ctx := context.Background()

	updated := storedItem()
	updated.Title = "Walnut bookshelf"
	updated.Status = models.ItemStatusSold

	gomock.InOrder(
		repo.EXPECT().GetItem(ctx, testItemID).Return(storedItem(), nil),
		repo.EXPECT().UpdateItem(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, item models.Item) error {
				assert.Equal(t, "Walnut bookshelf", item.Title)
				assert.Equal(t, "Solid oak, five shelves", item.Description)
				assert.Equal(t, "Furniture", item.Category)
				assert.Equal(t, models.ItemStatusSold, item.Status)
				return nil
			},
		),
		repo.EXPECT().GetItem(ctx, testItemID).Return(updated, nil),
	)

	item, err := svc.UpdateItem(ctx, testOwnerID, testItemID, models.ItemRequest{Title: "Walnut bookshelf", Status: models.ItemStatusSold})
	require.NoError(t, err)
	assert.Equal(t, updated, item)
}

func TestItemService_UpdateItem_NotOwner(t *testing.T) {
	svc, repo, _ := newTestItemSvc(t)
	repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)

	_, err := svc.UpdateItem(context.Background(), testOtherID, testItemID, models.ItemRequest{Title: "Mine now"})

	apiErr := requireAPIError(t, err, apierr.KindAuthorization)
	assert.Equal(t, 403, apiErr.Status())
	assert.Equal(t, MsgNotItemOwner, apiErr.Message())
}

func TestItemService_UpdateItem_DeletedConcurrently(t *testing.T) {
	svc, repo, _ := newTestItemSvc(t)
	repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)
	repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(store.ErrItemNotFound)

	_, err := svc.UpdateItem(context.Background(), testOwnerID, testItemID, models.ItemRequest{Title: "Gone"})
	requireAPIError(t, err, apierr.KindNotFound)
}

// ── DeleteItem ───────────────────────────────────────────────────────────────

func TestItemService_DeleteItem(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)
		repo.EXPECT().DeleteItem(gomock.Any(), testItemID).Return(nil)

		assert.NoError(t, svc.DeleteItem(context.Background(), testOwnerID, testItemID))
	})

	t.Run("not owner", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)

		err := svc.DeleteItem(context.Background(), testOtherID, testItemID)
		requireAPIError(t, err, apierr.KindAuthorization)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(models.Item{}, store.ErrItemNotFound)

		err := svc.DeleteItem(context.Background(), testOwnerID, testItemID)
		requireAPIError(t, err, apierr.KindNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo, _ := newTestItemSvc(t)
		repo.EXPECT().GetItem(gomock.Any(), testItemID).Return(storedItem(), nil)
		repo.EXPECT().DeleteItem(gomock.Any(), testItemID).Return(store.ErrExecutingStatement)

		err := svc.DeleteItem(context.Background(), testOwnerID, testItemID)
		requireAPIError(t, err, apierr.KindInternal)
	})
}

// ── ItemValidationService ────────────────────────────────────────────────────

func newTestItemValidation(t *testing.T) (ItemService, *mock.MockItemService) {
	t.Helper()
	inner := mock.NewMockItemService(gomock.NewController(t))
	return NewItemValidationService(validators.NewStructValidator()).Wrap(inner), inner
}

func TestItemValidationService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        models.ItemRequest
		wantFields map[string]string
	}{
		{
			name:       "title required",
			req:        models.ItemRequest{Description: "A perfectly fine chair"},
			wantFields: map[string]string{"title": apierr.MsgRequiredField},
		},
		{
			name:       "unknown category",
			req:        models.ItemRequest{Title: "Chair", Category: "Spaceships"},
			wantFields: map[string]string{"category": validators.MsgInvalidCategory},
		},
		{
			name: "short title and description",
			req:  models.ItemRequest{Title: "ab", Description: "short"},
			wantFields: map[string]string{
				"title":       "Title must be at least 3 characters long",
				"description": "Description must be at least 10 characters long",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestItemValidation(t)

			_, err := svc.CreateItem(context.Background(), testOwnerID, tt.req)

			apiErr := requireAPIError(t, err, apierr.KindValidation)
			assert.Equal(t, tt.wantFields, apiErr.Fields())
		})
	}
}

func TestItemValidationService_PassesValidRequests(t *testing.T) {
	svc, inner := newTestItemValidation(t)
	ctx := context.Background()
	req := models.ItemRequest{Title: "Chair", Category: "Furniture", ImageURL: "https://img.example.com/c.png"}

	inner.EXPECT().CreateItem(ctx, testOwnerID, req).Return(storedItem(), nil)
	inner.EXPECT().UpdateItem(ctx, testOwnerID, testItemID, models.ItemRequest{Status: models.ItemStatusSold}).Return(storedItem(), nil)
	inner.EXPECT().GetItem(ctx, testItemID).Return(storedItem(), nil)
	inner.EXPECT().ListItems(ctx, models.ItemFilter{}).Return([]models.Item{}, nil)
	inner.EXPECT().DeleteItem(ctx, testOwnerID, testItemID).Return(nil)

	_, err := svc.CreateItem(ctx, testOwnerID, req)
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, testOwnerID, testItemID, models.ItemRequest{Status: models.ItemStatusSold})
	require.NoError(t, err)
	_, err = svc.GetItem(ctx, testItemID)
	require.NoError(t, err)
	_, err = svc.ListItems(ctx, models.ItemFilter{})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, testOwnerID, testItemID))
}

func TestItemValidationService_UpdateRejectsBadStatus(t *testing.T) {
	svc, _ := newTestItemValidation(t)

	_, err := svc.UpdateItem(context.Background(), testOwnerID, testItemID, models.ItemRequest{Status: "lost"})

	apiErr := requireAPIError(t, err, apierr.KindValidation)
	assert.Contains(t, apiErr.Fields(), "status")
}
