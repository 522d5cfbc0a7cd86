package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the API base URL used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// MaxRetries and RetryBaseDelay bound retries of idempotent reads that
	// failed in transport or with a 5xx status.
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DSN is the SQLite database file holding the local session.
	DSN string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	// LogFile is where client logs are appended.
	LogFile string
	// Environment mirrors App.Environment and sets the client log level.
	Environment string
}

// GetClientConfig builds and validates a client-specific config view.
//
// overrides carries values bound by the CLI (its flags) and takes priority
// over environment variables, the JSON file and defaults. It may be nil.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		with(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			MaxRetries:     cfg.Retry.MaxRetries,
			RetryBaseDelay: cfg.Retry.BaseDelay,
		},
		Storage:     ClientStorage{DSN: cfg.Client.DB.DSN},
		LogFile:     cfg.Client.LogFile,
		Environment: cfg.App.Environment,
	}

	return clientCfg, clientCfg.validate()
}
