package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/mock"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/models"
)

const (
	testUserID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	testEmail  = "ann@x.com"
)

var errUnauthorized = &adapter.ResponseError{Status: http.StatusUnauthorized, Code: "AUTHENTICATION_ERROR", Message: "Invalid token"}

type sessionFixture struct {
	session *Session
	adapter *mock.MockServerAdapter
	repo    *mock.MockSessionRepository
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := sessionFixture{
		adapter: mock.NewMockServerAdapter(ctrl),
		repo:    mock.NewMockSessionRepository(ctrl),
	}
	f.session = NewSession(f.adapter, f.repo, logger.Nop())
	return f
}

func signedToken(t *testing.T, duration time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   "zero-waste-marketplace",
		UserID:   testUserID,
		Email:    testEmail,
		Duration: duration,
		SignKey:  "secret",
	})
	require.NoError(t, err)
	return token.SignedString
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := models.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func cachedUser() models.User {
	return models.User{ID: testUserID, Name: "Ann", Email: testEmail, Phone: "555-0100"}
}

// expectStored makes the next Restore find a valid session.
func (f sessionFixture) expectStored(t *testing.T) string {
	t.Helper()
	token := signedToken(t, time.Hour)
	f.repo.EXPECT().LoadSession(gomock.Any()).Return(models.Session{Token: token, User: cachedUser()}, nil)
	f.adapter.EXPECT().SetToken(token)
	return token
}

// held puts f.session into the logged-in state with a valid token.
func (f sessionFixture) held(t *testing.T) string {
	t.Helper()
	token := f.expectStored(t)

	_, err := f.session.Restore(context.Background())
	require.NoError(t, err)
	return token
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()
	req := models.LoginRequest{Email: testEmail, Password: "secret1"}

	t.Run("saves token and user", func(t *testing.T) {
		f := newSessionFixture(t)
		token := signedToken(t, time.Hour)
		f.adapter.EXPECT().Login(ctx, req).Return(models.LoginResponse{
			Token:     token,
			User:      models.PublicUser{ID: testUserID, Name: "Ann", Email: testEmail},
			ExpiresIn: "1h0m0s",
		}, nil)
		f.repo.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
			assert.Equal(t, token, s.Token)
			assert.Equal(t, testUserID, s.User.ID)
			assert.False(t, s.SavedAt.IsZero())
			return nil
		})
		f.adapter.EXPECT().SetToken(token)

		session, err := f.session.Login(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Ann", session.User.Name)
		assert.True(t, f.session.IsAuthenticated())
		assert.Equal(t, testEmail, f.session.CurrentUser().Email)
	})

	t.Run("rejected credentials keep state", func(t *testing.T) {
		f := newSessionFixture(t)
		rejected := &adapter.ResponseError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
		f.adapter.EXPECT().Login(ctx, req).Return(models.LoginResponse{}, rejected)

		_, err := f.session.Login(ctx, req)
		require.ErrorIs(t, err, adapter.ErrUnauthorized)
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("save failure", func(t *testing.T) {
		f := newSessionFixture(t)
		f.adapter.EXPECT().Login(ctx, req).Return(models.LoginResponse{Token: "tok"}, nil)
		f.repo.EXPECT().SaveSession(ctx, gomock.Any()).Return(errors.New("disk full"))

		_, err := f.session.Login(ctx, req)
		require.Error(t, err)
		assert.False(t, f.session.IsAuthenticated())
	})
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token is installed", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		assert.True(t, f.session.IsAuthenticated())
		assert.Equal(t, "Ann", f.session.CurrentUser().Name)
	})

	t.Run("nothing stored", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.EXPECT().LoadSession(ctx).Return(models.Session{}, store.ErrSessionNotFound)

		_, err := f.session.Restore(ctx)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.EXPECT().LoadSession(ctx).Return(models.Session{Token: expiredToken(t), User: cachedUser()}, nil)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		_, err := f.session.Restore(ctx)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, MsgSessionExpired, err.Error())
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("malformed token is cleared", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.EXPECT().LoadSession(ctx).Return(models.Session{Token: "not-a-jwt"}, nil)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		_, err := f.session.Restore(ctx)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.EXPECT().LoadSession(ctx).Return(models.Session{}, errors.New("locked"))

		_, err := f.session.Restore(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionExpired)
	})
}

func TestSession_RefreshUser(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces snapshot", func(t *testing.T) {
		f := newSessionFixture(t)
		token := f.held(t)
		profile := cachedUser()
		profile.Bio = "Collector"
		f.adapter.EXPECT().GetProfile(ctx).Return(profile, nil)
		f.repo.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
			assert.Equal(t, token, s.Token)
			assert.Equal(t, "Collector", s.User.Bio)
			return nil
		})

		user, err := f.session.RefreshUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Collector", user.Bio)
		assert.Equal(t, "Collector", f.session.CurrentUser().Bio)
	})

	t.Run("rejected token expires session", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.adapter.EXPECT().GetProfile(ctx).Return(models.User{}, errUnauthorized)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		_, err := f.session.RefreshUser(ctx)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("other errors keep session", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		down := &adapter.ResponseError{Status: http.StatusServiceUnavailable}
		f.adapter.EXPECT().GetProfile(ctx).Return(models.User{}, down)

		_, err := f.session.RefreshUser(ctx)
		assert.ErrorIs(t, err, adapter.ErrInternalServerError)
		assert.True(t, f.session.IsAuthenticated())
	})

	t.Run("not logged in", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := f.session.RefreshUser(ctx)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestSession_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("merges set fields", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.repo.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
			assert.Equal(t, "Ann Lee", s.User.Name)
			assert.Equal(t, "555-0100", s.User.Phone, "empty phone keeps the cached one")
			assert.Equal(t, testUserID, s.User.ID)
			return nil
		})

		require.NoError(t, f.session.UpdateUser(ctx, models.User{Name: "Ann Lee"}))
		assert.Equal(t, "Ann Lee", f.session.CurrentUser().Name)
	})

	t.Run("not logged in", func(t *testing.T) {
		f := newSessionFixture(t)
		assert.ErrorIs(t, f.session.UpdateUser(ctx, models.User{Name: "Ann"}), ErrNotLoggedIn)
	})
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears after server logout", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.adapter.EXPECT().Logout(ctx).Return(nil)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		require.NoError(t, f.session.Logout(ctx))
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("clears when server is unreachable", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.adapter.EXPECT().Logout(ctx).Return(adapter.ErrTransport)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		require.NoError(t, f.session.Logout(ctx))
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("without session skips server", func(t *testing.T) {
		f := newSessionFixture(t)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		require.NoError(t, f.session.Logout(ctx))
	})
}

func TestSession_Authorized(t *testing.T) {
	ctx := context.Background()

	t.Run("passes result through", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		errNotFound := &adapter.ResponseError{Status: http.StatusNotFound}

		err := f.session.Authorized(ctx, func(context.Context) error { return errNotFound })
		assert.ErrorIs(t, err, adapter.ErrNotFound)
		assert.True(t, f.session.IsAuthenticated())
	})

	t.Run("401 expires session", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		err := f.session.Authorized(ctx, func(context.Context) error { return errUnauthorized })
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("clear failure is reported too", func(t *testing.T) {
		f := newSessionFixture(t)
		f.held(t)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(errors.New("locked"))

		err := f.session.Authorized(ctx, func(context.Context) error { return errUnauthorized })
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.ErrorContains(t, err, "locked")
	})

	t.Run("no session does not call", func(t *testing.T) {
		f := newSessionFixture(t)
		called := false

		err := f.session.Authorized(ctx, func(context.Context) error { called = true; return nil })
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.False(t, called)
	})
}
