package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
)

type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, apierr.NotFound(MsgUserNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.GetProfile").Str("user_id", userID).Msg("error loading profile")
		return models.User{}, apierr.Internal(err)
	}

	return user, nil
}

// UpdateProfile applies the non-empty fields of req to the stored profile.
// A provided address replaces the stored one as a whole; its country
// defaults to [models.DefaultCountry].
func (s *userService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Address != nil {
		user.Address = *req.Address
		if user.Address.Country == "" {
			user.Address.Country = models.DefaultCountry
		}
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, apierr.NotFound(MsgUserNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.UpdateProfile").Str("user_id", userID).Msg("error updating profile")
		return models.User{}, apierr.Internal(err)
	}

	return updated, nil
}

// UserServiceWrapper is the [UserService] counterpart of [ItemServiceWrapper].
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

// UserValidationService checks profile updates before they reach the
// wrapped [UserService].
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService(validator validators.Validator) UserServiceWrapper {
	return &UserValidationService{validator: validator}
}

func (v *UserValidationService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *UserValidationService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	return v.inner.UpdateProfile(ctx, userID, req)
}

func (v *UserValidationService) Wrap(wrapped UserService) UserService {
	v.inner = wrapped
	return v
}
