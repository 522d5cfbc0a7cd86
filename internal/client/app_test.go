package client

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/models"
)

func newTestApp(t *testing.T) (*App, sessionFixture, *bytes.Buffer) {
	t.Helper()
	f := newSessionFixture(t)
	out := &bytes.Buffer{}
	return NewApp(f.adapter, f.session, out, logger.Nop()), f, out
}

func TestApp_ListItems(t *testing.T) {
	ctx := context.Background()

	t.Run("prints table", func(t *testing.T) {
		app, f, out := newTestApp(t)
		filter := models.ItemFilter{Category: "furniture"}
		f.adapter.EXPECT().ListItems(ctx, filter).Return([]models.Item{
			{ID: "i-1", Title: "Oak chair", Category: "furniture", Status: models.ItemStatusAvailable, Location: "Pune"},
		}, nil)

		require.NoError(t, app.ListItems(ctx, filter))
		assert.Contains(t, out.String(), "TITLE")
		assert.Contains(t, out.String(), "Oak chair")
	})

	t.Run("empty", func(t *testing.T) {
		app, f, out := newTestApp(t)
		f.adapter.EXPECT().ListItems(ctx, models.ItemFilter{}).Return(nil, nil)

		require.NoError(t, app.ListItems(ctx, models.ItemFilter{}))
		assert.Equal(t, "No items found.\n", out.String())
	})
}

func TestApp_Register(t *testing.T) {
	app, f, out := newTestApp(t)
	req := models.RegisterRequest{Name: "Ann", Email: testEmail, Password: "secret1"}
	f.adapter.EXPECT().Register(gomock.Any(), req).Return(models.PublicUser{ID: testUserID, Name: "Ann", Email: testEmail}, nil)

	require.NoError(t, app.Register(context.Background(), req))
	assert.Contains(t, out.String(), "Registered Ann <ann@x.com>")
}

func TestApp_Login(t *testing.T) {
	app, f, out := newTestApp(t)
	token := signedToken(t, time.Hour)
	f.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{
		Token: token,
		User:  models.PublicUser{ID: testUserID, Name: "Ann", Email: testEmail},
	}, nil)
	f.repo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	f.adapter.EXPECT().SetToken(token)

	require.NoError(t, app.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: "secret1"}))
	assert.Equal(t, "Logged in as Ann <ann@x.com>.\n", out.String())
}

func TestApp_MyItems_RequiresLogin(t *testing.T) {
	app, f, _ := newTestApp(t)
	f.repo.EXPECT().LoadSession(gomock.Any()).Return(models.Session{}, store.ErrSessionNotFound)

	err := app.MyItems(context.Background(), models.ItemFilter{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestApp_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		app, f, out := newTestApp(t)
		f.expectStored(t)
		req := models.ItemRequest{Title: "Oak chair"}
		f.adapter.EXPECT().CreateItem(ctx, req).Return(models.Item{ID: "i-1", Title: "Oak chair", Status: models.ItemStatusAvailable}, nil)

		require.NoError(t, app.CreateItem(ctx, req))
		assert.Contains(t, out.String(), "Created item i-1.")
		assert.Contains(t, out.String(), "Oak chair")
	})

	t.Run("expired on server", func(t *testing.T) {
		app, f, _ := newTestApp(t)
		f.expectStored(t)
		f.adapter.EXPECT().CreateItem(ctx, gomock.Any()).Return(models.Item{}, errUnauthorized)
		f.adapter.EXPECT().SetToken("")
		f.repo.EXPECT().ClearSession(ctx).Return(nil)

		err := app.CreateItem(ctx, models.ItemRequest{Title: "Oak chair"})
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestApp_DeleteItem(t *testing.T) {
	app, f, out := newTestApp(t)
	f.expectStored(t)
	f.adapter.EXPECT().DeleteItem(gomock.Any(), "i-1").Return(nil)

	require.NoError(t, app.DeleteItem(context.Background(), "i-1"))
	assert.Equal(t, "Deleted item i-1.\n", out.String())
}

func TestApp_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	app, f, out := newTestApp(t)
	f.expectStored(t)
	req := models.ProfileUpdateRequest{Bio: "Collector"}
	updated := cachedUser()
	updated.Bio = "Collector"
	f.adapter.EXPECT().UpdateProfile(ctx, req).Return(updated, nil)
	f.repo.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	require.NoError(t, app.UpdateProfile(ctx, req))
	assert.Contains(t, out.String(), "Bio:      Collector")
	assert.Equal(t, "Collector", f.session.CurrentUser().Bio)
}

func TestApp_Logout_WithoutSession(t *testing.T) {
	app, f, out := newTestApp(t)
	f.repo.EXPECT().LoadSession(gomock.Any()).Return(models.Session{}, store.ErrSessionNotFound)
	f.adapter.EXPECT().SetToken("")
	f.repo.EXPECT().ClearSession(gomock.Any()).Return(nil)

	require.NoError(t, app.Logout(context.Background()))
	assert.Equal(t, "Logged out.\n", out.String())
}

func TestApp_Version(t *testing.T) {
	ctx := context.Background()
	build := models.NewBuildInfo("1.2.0", "", "")

	t.Run("both", func(t *testing.T) {
		app, f, out := newTestApp(t)
		f.adapter.EXPECT().GetVersion(ctx).Return(models.BuildInfo{Version: "1.0.0", Date: "N/A", Commit: "abc"}, nil)

		require.NoError(t, app.Version(ctx, build))
		assert.Equal(t, "Client: 1.2.0 (N/A, N/A)\nServer: 1.0.0 (N/A, abc)\n", out.String())
	})

	t.Run("server unreachable", func(t *testing.T) {
		app, f, out := newTestApp(t)
		f.adapter.EXPECT().GetVersion(ctx).Return(models.BuildInfo{}, adapter.ErrTransport)

		assert.ErrorIs(t, app.Version(ctx, build), adapter.ErrTransport)
		assert.Contains(t, out.String(), "Client: 1.2.0")
	})
}
