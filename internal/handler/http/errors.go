// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// "Authorization" header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrHandlerPanicked wraps the value recovered from a panicking handler.
	ErrHandlerPanicked = errors.New("handler panicked")
)

// Client-facing messages written by middleware.
const (
	MsgNoToken       = "No token provided"
	MsgInvalidToken  = "Invalid token"
	MsgRouteNotFound = "Route not found"
	MsgLoggedOut     = "Logged out successfully"
	MsgItemDeleted   = "Item deleted successfully"
	MsgInvalidStatus = "Invalid item status"
)
