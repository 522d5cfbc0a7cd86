package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/models"
)

// Session is the default [SessionManager]. The token and the user snapshot
// are saved and cleared together; whenever a session is held its token is
// installed on the adapter.
type Session struct {
	adapter    adapter.ServerAdapter
	repository store.SessionRepository

	mu      sync.RWMutex
	current models.Session

	now    func() time.Time
	logger *logger.Logger
}

func NewSession(serverAdapter adapter.ServerAdapter, repository store.SessionRepository, logger *logger.Logger) *Session {
	return &Session{
		adapter:    serverAdapter,
		repository: repository,
		now:        time.Now,
		logger:     logger,
	}
}

// Login authenticates against the server and persists the returned token
// with the user snapshot. A failed login leaves any stored session as is.
func (s *Session) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	resp, err := s.adapter.Login(ctx, req)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		Token:   resp.Token,
		User:    resp.User.User(),
		SavedAt: s.now(),
	}
	if err = s.repository.SaveSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("error saving session: %w", err)
	}

	s.set(session)
	s.logger.Info().Str("user_id", session.User.ID).Msg("logged in")

	return session, nil
}

// Restore loads the stored session. A token that cannot be decoded or has
// expired is cleared and reported as [ErrSessionExpired]; no stored
// session yields [ErrNotLoggedIn].
func (s *Session) Restore(ctx context.Context) (models.Session, error) {
	session, err := s.repository.LoadSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("error loading session: %w", err)
	}

	token, err := utils.ParseUnverifiedToken(session.Token)
	if err != nil || token.Expired(s.now()) {
		s.logger.Debug().Err(err).Msg("stored token is no longer usable")
		return models.Session{}, s.expire(ctx)
	}

	s.set(session)
	return session, nil
}

// RefreshUser fetches the profile of the logged-in user and replaces the
// cached snapshot with it.
func (s *Session) RefreshUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := s.Authorized(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.adapter.GetProfile(ctx)
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	if err = s.replaceUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser merges the set fields of user into the cached snapshot and
// saves it. String fields and the address overwrite only when non-empty;
// the remaining fields are taken only from a full record (one with an id).
func (s *Session) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.RLock()
	merged := s.current.User
	held := !s.current.Empty()
	s.mu.RUnlock()

	if !held {
		return ErrNotLoggedIn
	}

	mergeUser(&merged, user)
	return s.replaceUser(ctx, merged)
}

// Logout tells the server and forgets the local session. The local session
// is cleared even when the server cannot be reached.
func (s *Session) Logout(ctx context.Context) error {
	if s.IsAuthenticated() {
		if err := s.adapter.Logout(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
		}
	}

	s.set(models.Session{})
	if err := s.repository.ClearSession(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

// Authorized runs call with the session token installed. A 401 from the
// server clears the session and turns into [ErrSessionExpired].
func (s *Session) Authorized(ctx context.Context, call func(ctx context.Context) error) error {
	if !s.IsAuthenticated() {
		return ErrNotLoggedIn
	}

	err := call(ctx)
	if errors.Is(err, adapter.ErrUnauthorized) {
		return s.expire(ctx)
	}
	return err
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.current.Empty()
}

func (s *Session) CurrentUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User
}

func (s *Session) set(session models.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.adapter.SetToken(session.Token)
}

func (s *Session) replaceUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	if s.current.Empty() {
		s.mu.Unlock()
		return ErrNotLoggedIn
	}
	s.current.User = user
	s.current.SavedAt = s.now()
	session := s.current
	s.mu.Unlock()

	if err := s.repository.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

// expire drops the session and returns ErrSessionExpired, or the clear
// error if the stored copy could not be removed.
func (s *Session) expire(ctx context.Context) error {
	s.set(models.Session{})
	if err := s.repository.ClearSession(ctx); err != nil {
		return errors.Join(ErrSessionExpired, fmt.Errorf("error clearing session: %w", err))
	}
	return ErrSessionExpired
}

func mergeUser(dst *models.User, src models.User) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.Name, src.Name},
		{&dst.Email, src.Email},
		{&dst.Phone, src.Phone},
		{&dst.Avatar, src.Avatar},
		{&dst.Bio, src.Bio},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if src.Address != (models.Address{}) {
		dst.Address = src.Address
	}

	if src.ID == "" {
		return
	}
	dst.ID = src.ID
	dst.IsVerified = src.IsVerified
	dst.Rating = src.Rating
	dst.TotalTransactions = src.TotalTransactions
	if !src.CreatedAt.IsZero() {
		dst.CreatedAt = src.CreatedAt
	}
	if !src.UpdatedAt.IsZero() {
		dst.UpdatedAt = src.UpdatedAt
	}
}
