package client

import "errors"

// MsgSessionExpired is shown when the stored token is expired or was
// rejected by the server.
const MsgSessionExpired = "Your session has expired. Please login again."

var (
	// ErrSessionExpired is returned when the stored session can no longer be
	// used. The session has already been cleared when it is returned.
	ErrSessionExpired = errors.New(MsgSessionExpired)

	// ErrNotLoggedIn is returned by operations that need a session when
	// none is stored.
	ErrNotLoggedIn = errors.New("not logged in")
)
