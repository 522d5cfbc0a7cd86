package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every access token: the standard
// registered claims (sub, iss, aud, iat, exp) plus the account email.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the email address of the token subject at issue time.
	Email string `json:"email"`
}

// Token wraps a JWT access token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations and [Claims] for
// claim access. UserID and Email are cached copies of the "sub" and "email"
// claims, populated after parsing or issuing.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// ExpiresAt returns the expiry of the token, or the zero time when the
// claim is absent.
func (t *Token) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// Expired reports whether the token expiry is at or before now. A token
// without an expiry claim is treated as expired.
func (t *Token) Expired(now time.Time) bool {
	exp := t.ExpiresAt()
	return exp.IsZero() || !exp.After(now)
}

// GetUserID extracts the user identifier from the "sub" claim.
func (t *Token) GetUserID() (string, error) {
	sub, err := t.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty subject in token")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
