package main

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/client"
	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/store"
)

// runtime holds what every command needs. It is built once the flags are
// parsed, before the command runs.
type runtime struct {
	app      *client.App
	storages *store.ClientStorages
	logger   *logger.Logger
}

func (rt *runtime) init(ctx context.Context, overrides *config.StructuredConfig, out io.Writer) error {
	cfg, err := config.GetClientConfig(overrides)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	rt.logger = logger.NewClientLogger("zero-waste-client", cfg.LogFile).ForEnvironment(cfg.Environment)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, rt.logger)
	if err != nil {
		return fmt.Errorf("error creating server adapter: %w", err)
	}

	rt.storages, err = store.NewClientStorages(ctx, cfg.Storage, rt.logger)
	if err != nil {
		return fmt.Errorf("error creating local storage: %w", err)
	}

	session := client.NewSession(serverAdapter, rt.storages.SessionRepository, rt.logger)
	rt.app = client.NewApp(serverAdapter, session, out, rt.logger)

	return nil
}

func (rt *runtime) close() {
	if rt.storages == nil {
		return
	}
	if err := rt.storages.Close(); err != nil {
		rt.logger.Err(err).Msg("error closing local storage")
	}
}
