// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apierr defines the closed set of errors the HTTP API reports to
// its callers.
//
// Every error is an [*Error] tagged with a [Kind]. The kind fixes the HTTP
// status and the machine-readable code a client can branch on; the message
// is human readable and, for validation failures, Fields carries per-field
// detail. Callers dispatch on [Error.Kind] rather than on Go type identity.
//
// An optional cause can be attached for server-side logging. It is reported
// by [Error.Unwrap] but never serialized to a client.
package apierr

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Kind discriminates the variants of [Error].
type Kind int

const (
	// KindInternal is an unanticipated failure. Its message is replaced
	// with an opaque one in production.
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindRateLimit
)

// Stable error codes returned in the envelope's error.code field.
const (
	CodeInternal       = "INTERNAL_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND_ERROR"
	CodeUserExists     = "USER_EXISTS"
	CodeRateLimit      = "RATE_LIMIT_ERROR"
)

// Default messages used when a constructor receives an empty message.
const (
	MsgInternal       = "Internal server error"
	MsgValidation     = "Validation failed"
	MsgAuthentication = "Authentication required"
	MsgAuthorization  = "Access denied"
	MsgNotFound       = "Resource not found"
	MsgRateLimit      = "Rate limit exceeded"
	MsgRequiredField  = "This field is required"
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "internal"
	}
}

// Error is an API error. Values are immutable once constructed; every
// accessor returns copies.
type Error struct {
	kind    Kind
	status  int
	code    string
	message string
	fields  map[string]string
	cause   error
}

// Error implements the error interface. The cause, if any, is appended so
// that server-side logs keep the full chain.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the attached cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the variant discriminator.
func (e *Error) Kind() Kind { return e.kind }

// Status returns the HTTP status code.
func (e *Error) Status() int { return e.status }

// Code returns the machine-readable error code.
func (e *Error) Code() string { return e.code }

// Message returns the client-facing message.
func (e *Error) Message() string { return e.message }

// Fields returns a copy of the per-field validation messages, or nil.
func (e *Error) Fields() map[string]string {
	if len(e.fields) == 0 {
		return nil
	}
	return maps.Clone(e.fields)
}

// WithCause returns a copy of e with cause attached.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.fields = maps.Clone(e.fields)
	cp.cause = cause
	return &cp
}

// New builds a generic error with a caller-supplied status and code.
// A zero status defaults to 500 and an empty code to INTERNAL_ERROR.
func New(message string, status int, code string) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if code == "" {
		code = CodeInternal
	}
	kind := kindForStatus(status)
	return &Error{kind: kind, status: status, code: code, message: orDefault(message, MsgInternal)}
}

// Validation builds a 400 error carrying per-field messages.
func Validation(message string, fields map[string]string) *Error {
	return &Error{
		kind:    KindValidation,
		status:  http.StatusBadRequest,
		code:    CodeValidation,
		message: orDefault(message, MsgValidation),
		fields:  maps.Clone(fields),
	}
}

// Authentication builds a 401 error.
func Authentication(message string) *Error {
	return &Error{
		kind:    KindAuthentication,
		status:  http.StatusUnauthorized,
		code:    CodeAuthentication,
		message: orDefault(message, MsgAuthentication),
	}
}

// Authorization builds a 403 error.
func Authorization(message string) *Error {
	return &Error{
		kind:    KindAuthorization,
		status:  http.StatusForbidden,
		code:    CodeAuthorization,
		message: orDefault(message, MsgAuthorization),
	}
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return &Error{
		kind:    KindNotFound,
		status:  http.StatusNotFound,
		code:    CodeNotFound,
		message: orDefault(message, MsgNotFound),
	}
}

// Conflict builds a 409 error with the given code.
func Conflict(message, code string) *Error {
	return &Error{
		kind:    KindConflict,
		status:  http.StatusConflict,
		code:    orDefault(code, "CONFLICT"),
		message: message,
	}
}

// RateLimit builds the 429 error returned when a caller exceeds its quota.
func RateLimit() *Error {
	return &Error{
		kind:    KindRateLimit,
		status:  http.StatusTooManyRequests,
		code:    CodeRateLimit,
		message: MsgRateLimit,
	}
}

// Internal wraps an unanticipated failure. The message is cause's text.
// Internal errors that carry a cause are reported to clients as
// [MsgInternal] in production; errors built with [New] keep their message.
func Internal(cause error) *Error {
	msg := MsgInternal
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{
		kind:    KindInternal,
		status:  http.StatusInternalServerError,
		code:    CodeInternal,
		message: msg,
		cause:   cause,
	}
}

// As reports whether err's chain contains an [*Error] and returns it.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err's chain contains an [*Error] of kind k.
func IsKind(err error, k Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.kind == k
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindInternal
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
