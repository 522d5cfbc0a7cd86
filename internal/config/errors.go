package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no token signing secret was
	// configured. The server refuses to start without one.
	ErrMissingTokenSignKey = errors.New("token sign key is not configured")
	// ErrMissingDSN indicates that no database DSN was configured.
	ErrMissingDSN = errors.New("database DSN is not configured")
	// ErrInvalidAppConfigs indicates invalid token parameters.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRateLimitConfigs indicates an unknown backend or a
	// non-positive limit or window.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
