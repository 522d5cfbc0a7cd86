package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken when the
// header is missing, uses a scheme other than Bearer or carries no token.
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// TokenParams holds everything GenerateJWTToken needs to issue an access
// token. Issuer, Duration and SignKey are mandatory.
type TokenParams struct {
	Issuer   string
	Audience string
	UserID   string
	Email    string
	Duration time.Duration
	SignKey  string
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for the given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Audience  (aud): the intended consumers, when configured
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus Duration
//   - email: the account email at issue time
//
// Returns an error if Issuer, SignKey or UserID is empty or Duration is not
// positive.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(utils.TokenParams{
//	    Issuer: "zero-waste-marketplace", UserID: id, Duration: 7 * 24 * time.Hour, SignKey: key,
//	})
func GenerateJWTToken(params TokenParams) (models.Token, error) {
	if params.Issuer == "" || params.Duration <= 0 || params.SignKey == "" || params.UserID == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Subject:   params.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(params.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: params.Email,
	}
	if params.Audience != "" {
		claims.Audience = jwt.ClaimStrings{params.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		Claims:       claims,
		SignedString: tokenString,
		UserID:       params.UserID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against tokenIssuer
//   - Audience (aud) claim check, when tokenAudience is not empty
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "zero-waste-marketplace", "zero-waste-users")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer, tokenAudience string) (models.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// unused trailing bits of a base64url segment must be zero, otherwise
		// two spellings of one signature both verify
		jwt.WithStrictDecoding(),
	}
	if tokenAudience != "" {
		opts = append(opts, jwt.WithAudience(tokenAudience))
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed := models.Token{Token: token, Claims: *claims, SignedString: tokenString}
	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	parsed.UserID = userID

	return parsed, nil
}

// ParseUnverifiedToken decodes the claims of tokenString without checking
// its signature. The client uses it to read the expiry of a stored token;
// it must never be used to authorize anything.
func ParseUnverifiedToken(tokenString string) (models.Token, error) {
	claims := &models.Claims{}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return models.Token{}, fmt.Errorf("error decoding token: %w", err)
	}

	parsed := models.Token{Token: token, Claims: *claims, SignedString: tokenString}
	parsed.UserID, _ = parsed.GetUserID()
	return parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || scheme != "Bearer" {
		return "", ErrInvalidAuthorizationHeader
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
