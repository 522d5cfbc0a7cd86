// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/models"
)

// App runs single client commands. Commands that act on behalf of the user
// restore the stored session first.
type App struct {
	adapter adapter.ServerAdapter
	session SessionManager
	out     io.Writer

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, session SessionManager, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter: serverAdapter,
		session: session,
		out:     out,
		logger:  logger,
	}
}

func (a *App) Register(ctx context.Context, req models.RegisterRequest) error {
	user, err := a.adapter.Register(ctx, req)
	if err != nil {
		return err
	}

	a.printf("Registered %s <%s>. You can now log in.\n", user.Name, user.Email)
	return nil
}

func (a *App) Login(ctx context.Context, req models.LoginRequest) error {
	session, err := a.session.Login(ctx, req)
	if err != nil {
		return err
	}

	a.printf("Logged in as %s <%s>.\n", session.User.Name, session.User.Email)
	return nil
}

// Logout succeeds even without a usable session.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.session.Restore(ctx); err != nil && !isSessionGone(err) {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}

	a.printf("Logged out.\n")
	return nil
}

// Whoami refreshes and prints the profile of the logged-in user.
func (a *App) Whoami(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	user, err := a.session.RefreshUser(ctx)
	if err != nil {
		return err
	}

	a.printUser(user)
	return nil
}

func (a *App) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	var user models.User
	err := a.session.Authorized(ctx, func(ctx context.Context) error {
		var err error
		user, err = a.adapter.UpdateProfile(ctx, req)
		return err
	})
	if err != nil {
		return err
	}
	if err = a.session.UpdateUser(ctx, user); err != nil {
		return err
	}

	a.printUser(user)
	return nil
}

// ListItems browses public listings and needs no session.
func (a *App) ListItems(ctx context.Context, filter models.ItemFilter) error {
	items, err := a.adapter.ListItems(ctx, filter)
	if err != nil {
		return err
	}

	return a.printItems(items)
}

func (a *App) ShowItem(ctx context.Context, id string) error {
	item, err := a.adapter.GetItem(ctx, id)
	if err != nil {
		return err
	}

	a.printItem(item)
	return nil
}

func (a *App) MyItems(ctx context.Context, filter models.ItemFilter) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	var items []models.Item
	err := a.session.Authorized(ctx, func(ctx context.Context) error {
		var err error
		items, err = a.adapter.ListUserItems(ctx, filter)
		return err
	})
	if err != nil {
		return err
	}

	return a.printItems(items)
}

func (a *App) CreateItem(ctx context.Context, req models.ItemRequest) error {
	return a.writeItem(ctx, "Created", func(ctx context.Context) (models.Item, error) {
		return a.adapter.CreateItem(ctx, req)
	})
}

func (a *App) UpdateItem(ctx context.Context, id string, req models.ItemRequest) error {
	return a.writeItem(ctx, "Updated", func(ctx context.Context) (models.Item, error) {
		return a.adapter.UpdateItem(ctx, id, req)
	})
}

func (a *App) DeleteItem(ctx context.Context, id string) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	err := a.session.Authorized(ctx, func(ctx context.Context) error {
		return a.adapter.DeleteItem(ctx, id)
	})
	if err != nil {
		return err
	}

	a.printf("Deleted item %s.\n", id)
	return nil
}

// Version prints the client build and, when reachable, the server build.
func (a *App) Version(ctx context.Context, build models.BuildInfo) error {
	a.printf("Client: %s (%s, %s)\n", build.Version, build.Date, build.Commit)

	server, err := a.adapter.GetVersion(ctx)
	if err != nil {
		return err
	}

	a.printf("Server: %s (%s, %s)\n", server.Version, server.Date, server.Commit)
	return nil
}

func (a *App) writeItem(ctx context.Context, verb string, call func(ctx context.Context) (models.Item, error)) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	var item models.Item
	err := a.session.Authorized(ctx, func(ctx context.Context) error {
		var err error
		item, err = call(ctx)
		return err
	})
	if err != nil {
		return err
	}

	a.printf("%s item %s.\n", verb, item.ID)
	a.printItem(item)
	return nil
}

func (a *App) restore(ctx context.Context) error {
	_, err := a.session.Restore(ctx)
	return err
}

func isSessionGone(err error) bool {
	return errors.Is(err, ErrNotLoggedIn) || errors.Is(err, ErrSessionExpired)
}

func (a *App) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		a.logger.Err(err).Msg("error writing output")
	}
}

func (a *App) printUser(user models.User) {
	a.printf("ID:       %s\nName:     %s\nEmail:    %s\n", user.ID, user.Name, user.Email)
	if user.Phone != "" {
		a.printf("Phone:    %s\n", user.Phone)
	}
	if user.Bio != "" {
		a.printf("Bio:      %s\n", user.Bio)
	}
	if user.Address.City != "" || user.Address.Country != "" {
		a.printf("Location: %s, %s\n", user.Address.City, user.Address.Country)
	}
	a.printf("Verified: %t\n", user.IsVerified)
}

func (a *App) printItem(item models.Item) {
	a.printf("ID:          %s\nTitle:       %s\nStatus:      %s\n", item.ID, item.Title, item.Status)
	if item.Category != "" {
		a.printf("Category:    %s\n", item.Category)
	}
	if item.Location != "" {
		a.printf("Location:    %s\n", item.Location)
	}
	if item.Description != "" {
		a.printf("Description: %s\n", item.Description)
	}
	if item.Owner != nil {
		a.printf("Owner:       %s\n", item.Owner.Name)
	}
}

func (a *App) printItems(items []models.Item) error {
	if len(items) == 0 {
		a.printf("No items found.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tLOCATION")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Title, item.Category, item.Status, item.Location)
	}
	return tw.Flush()
}
