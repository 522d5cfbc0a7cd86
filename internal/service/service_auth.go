package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/internal/validators"
	"github.com/MKhiriev/zero-waste-market/models"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor applied at registration.
const PasswordHashCost = 12

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	ids IDGenerator

	// hashCost is the bcrypt cost used for new password hashes.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenAudience is the "aud" claim. Empty disables the audience check.
	tokenAudience string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, ids IDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		ids:            ids,
		hashCost:       PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenAudience:  cfg.TokenAudience,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Name, email and password are checked together and every failing field is
// reported in a single validation error. The email is stored trimmed and
// lower-cased; a taken email yields 409 USER_EXISTS whether it is caught by
// the lookup or by the unique index.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	fieldErrs := make(validators.FieldErrors)
	fieldErrs.Add("name", validators.ValidateName(req.Name))
	fieldErrs.Add("email", validators.ValidateEmail(req.Email))
	fieldErrs.Add("password", validators.ValidatePassword(req.Password))
	if err := fieldErrs.Err(validators.MsgFixErrors); err != nil {
		return models.User{}, err
	}

	email := validators.NormalizeEmail(req.Email)

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, apierr.Conflict(MsgUserExists, apierr.CodeUserExists)
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user lookup by email failed")
		return models.User{}, apierr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		return models.User{}, apierr.Internal(fmt.Errorf("%w: %w", ErrHashingPassword, err))
	}

	user := models.User{
		ID:           a.ids.Generate(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Address:      models.Address{Country: models.DefaultCountry},
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrUserAlreadyExists) {
		return models.User{}, apierr.Conflict(MsgUserExists, apierr.CodeUserExists)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, apierr.Internal(err)
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates an existing user and issues an access token.
//
// An unknown email and a wrong password produce the same authentication
// error so that callers cannot tell which addresses are registered.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if msg := validators.ValidateEmail(req.Email); msg != "" {
		return models.LoginResponse{}, apierr.Validation(validators.MsgInvalidEmailType, map[string]string{"email": msg})
	}

	user, err := a.userRepository.FindUserByEmail(ctx, validators.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		return models.LoginResponse{}, apierr.Authentication(MsgInvalidCredentials)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.LoginResponse{}, apierr.Internal(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("user_id", user.ID).Msg("wrong password")
		return models.LoginResponse{}, apierr.Authentication(MsgInvalidCredentials)
	}

	token, err := a.createToken(user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("token creation failed")
		return models.LoginResponse{}, apierr.Internal(err)
	}

	return models.LoginResponse{
		Token:     token.SignedString,
		User:      user.Public(),
		ExpiresIn: formatExpiresIn(a.tokenDuration),
	}, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer or audience, bad signature,
// malformed) is normalised to one authentication error so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.tokenAudience)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, apierr.Authentication(MsgInvalidToken).WithCause(err)
	}

	return token, nil
}

func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		Audience: a.tokenAudience,
		UserID:   user.ID,
		Email:    user.Email,
		Duration: a.tokenDuration,
		SignKey:  a.tokenSignKey,
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// formatExpiresIn renders a token lifetime the way clients display it:
// whole days as "7d", whole hours as "12h", anything else in Go notation.
func formatExpiresIn(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d >= day && d%day == 0:
		return fmt.Sprintf("%dd", d/day)
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	default:
		return d.String()
	}
}
