package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/handler"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/ratelimit"
	"github.com/MKhiriev/zero-waste-market/internal/server"
	"github.com/MKhiriev/zero-waste-market/internal/service"
	"github.com/MKhiriev/zero-waste-market/internal/store"
	"github.com/MKhiriev/zero-waste-market/internal/workers"
	"github.com/MKhiriev/zero-waste-market/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("zero-waste-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.ForEnvironment(cfg.App.Environment)

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer closeWithLog(log, "storages", storages.Close)

	services, err := service.NewServices(storages, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	limits, err := ratelimit.NewBackend(ctx, cfg.RateLimit, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rate limiter")
	}
	defer closeWithLog(log, "rate limiter", limits.Close)

	handlers, err := handler.NewHandlers(services, limits.Limiter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers()
	if limits.Janitor != nil {
		background = workers.NewWorkers(limits.Janitor)
	}

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func closeWithLog(log *logger.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Err(err).Str("resource", name).Msg("error closing")
	}
}

func printBuildInfo(build models.BuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
