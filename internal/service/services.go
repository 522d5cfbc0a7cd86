package service

import (
	"fmt"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

type Services struct {
	AuthService    AuthService
	ItemService    ItemService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.BuildInfo, logger *logger.Logger) (*Services, error) {
	ids := utils.NewUUIDGenerator()
	validator := validators.NewStructValidator()

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, ids, cfg.App, logger),
		ItemService:    NewItemValidationService(validator).Wrap(NewItemService(storages.ItemRepository, ids, logger)),
		UserService:    NewUserValidationService(validator).Wrap(NewUserService(storages.UserRepository, logger)),
		AppInfoService: appInfo,
	}, nil
}
