// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] can run the
// server. A missing signing secret or database DSN is fatal: the server
// never starts with a guessed or empty key.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.TokenSignKey) == "" {
		return ErrMissingTokenSignKey
	}
	if cfg.App.TokenDuration <= 0 || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrMissingDSN
	}

	switch cfg.RateLimit.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RateLimit.RedisAddress == "" {
			return fmt.Errorf("%w: redis backend needs an address", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Backend)
	}
	if cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.Window <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
