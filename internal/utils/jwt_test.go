package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "zero-waste-marketplace"
	testAudience = "zero-waste-users"
	testKey      = "secret-key"
	testUserID   = "0190c8a4-7b9e-7cc2-9d1e-3f1a2b3c4d5e"
)

func validParams() TokenParams {
	return TokenParams{
		Issuer:   testIssuer,
		Audience: testAudience,
		UserID:   testUserID,
		Email:    "asha@example.com",
		Duration: time.Hour,
		SignKey:  testKey,
	}
}

// signClaims signs arbitrary claims so tests can build tokens that
// GenerateJWTToken refuses to produce (expired, foreign audience, ...).
func signClaims(t *testing.T, method jwt.SigningMethod, claims models.Claims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestGenerateJWTToken_Success(t *testing.T) {
	before := time.Now().Add(-time.Second)

	token, err := GenerateJWTToken(validParams())
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.NotNil(t, token.Token)
	assert.Equal(t, testUserID, token.UserID)
	assert.Equal(t, testIssuer, token.Issuer)
	assert.Equal(t, jwt.ClaimStrings{testAudience}, token.Audience)
	assert.Equal(t, "asha@example.com", token.Email)
	assert.True(t, token.ExpiresAt().After(before.Add(time.Hour)))
	assert.Equal(t, token.SignedString, token.String())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TokenParams)
	}{
		{"empty issuer", func(p *TokenParams) { p.Issuer = "" }},
		{"zero duration", func(p *TokenParams) { p.Duration = 0 }},
		{"negative duration", func(p *TokenParams) { p.Duration = -time.Second }},
		{"empty key", func(p *TokenParams) { p.SignKey = "" }},
		{"empty user id", func(p *TokenParams) { p.UserID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.modify(&params)
			_, err := GenerateJWTToken(params)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken(validParams())
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testKey, testIssuer, testAudience)
	require.NoError(t, err)

	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, "asha@example.com", parsed.Email)
	assert.Equal(t, issued.SignedString, parsed.SignedString)
}

func TestValidateAndParseJWTToken_RejectsEveryCharacterChange(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_."

	issued, err := GenerateJWTToken(validParams())
	require.NoError(t, err)
	signed := issued.SignedString

	accepted := 0
	for i := range len(signed) {
		for _, c := range []byte(alphabet) {
			if c == signed[i] {
				continue
			}
			mutated := signed[:i] + string(c) + signed[i+1:]
			if _, err := ValidateAndParseJWTToken(mutated, testKey, testIssuer, testAudience); err == nil {
				accepted++
				t.Errorf("accepted token with position %d changed from %q to %q", i, signed[i], c)
			}
		}
	}
	assert.Zero(t, accepted)
}

func TestValidateAndParseJWTToken_RejectsLastSignatureCharVariants(t *testing.T) {
	issued, err := GenerateJWTToken(validParams())
	require.NoError(t, err)
	signed := issued.SignedString
	last := len(signed) - 1

	// a 32-byte HS256 signature leaves two unused bits in its last character
	for _, c := range []byte("wxyzABCD") {
		if c == signed[last] {
			continue
		}
		_, err := ValidateAndParseJWTToken(signed[:last]+string(c), testKey, testIssuer, testAudience)
		assert.Error(t, err, "last char %q", c)
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	now := time.Now()
	base := func() models.Claims {
		return models.Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   testUserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
	}

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Second))

	noExpiry := base()
	noExpiry.ExpiresAt = nil

	wrongAudience := base()
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	wrongIssuer := base()
	wrongIssuer.Issuer = "fake-issuer"

	noSubject := base()
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"wrong key", signClaims(t, jwt.SigningMethodHS256, base(), []byte("wrong-key")), jwt.ErrTokenSignatureInvalid},
		{"expired", signClaims(t, jwt.SigningMethodHS256, expired, []byte(testKey)), jwt.ErrTokenExpired},
		{"no expiry", signClaims(t, jwt.SigningMethodHS256, noExpiry, []byte(testKey)), jwt.ErrTokenRequiredClaimMissing},
		{"wrong audience", signClaims(t, jwt.SigningMethodHS256, wrongAudience, []byte(testKey)), jwt.ErrTokenInvalidAudience},
		{"wrong issuer", signClaims(t, jwt.SigningMethodHS256, wrongIssuer, []byte(testKey)), jwt.ErrTokenInvalidIssuer},
		{"other hmac method", signClaims(t, jwt.SigningMethodHS512, base(), []byte(testKey)), jwt.ErrTokenSignatureInvalid},
		{"no subject", signClaims(t, jwt.SigningMethodHS256, noSubject, []byte(testKey)), nil},
		{"malformed", "not.a.token", jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, testKey, testIssuer, testAudience)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_AudienceOptional(t *testing.T) {
	params := validParams()
	params.Audience = ""
	issued, err := GenerateJWTToken(params)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, testKey, testIssuer, "")
	assert.NoError(t, err)
}

func TestParseUnverifiedToken(t *testing.T) {
	t.Run("reads claims regardless of key", func(t *testing.T) {
		issued, err := GenerateJWTToken(validParams())
		require.NoError(t, err)

		parsed, err := ParseUnverifiedToken(issued.SignedString)
		require.NoError(t, err)
		assert.Equal(t, testUserID, parsed.UserID)
		assert.False(t, parsed.Expired(time.Now()))
	})

	t.Run("expired token still decodes", func(t *testing.T) {
		claims := models.Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		parsed, err := ParseUnverifiedToken(signClaims(t, jwt.SigningMethodHS256, claims, []byte("any")))
		require.NoError(t, err)
		assert.True(t, parsed.Expired(time.Now()))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseUnverifiedToken("garbage")
		assert.Error(t, err)
	})
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "  Bearer abc  ", want: "abc"},
		{header: "", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "bearer abc", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
