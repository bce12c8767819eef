package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/handler"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/server"
	"github.com/MKhiriev/go-live-sync/internal/service"
	"github.com/MKhiriev/go-live-sync/internal/store"
	"github.com/MKhiriev/go-live-sync/internal/workers"
	"github.com/MKhiriev/go-live-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// bootTimeout bounds the initial load and the boot configuration.
const bootTimeout = 30 * time.Second

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	if err := run(info); err != nil {
		fmt.Fprintf(os.Stderr, "go-live-sync: %v\n", err)
		os.Exit(1)
	}
}

func run(info models.AppBuildInfo) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger("server", cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	queue := workers.NewQueue("sync", cfg.Workers.JobTimeout, log)
	background := workers.NewWorkers(queue)
	background.Start(ctx)
	defer background.Stop()

	services, err := service.NewServices(queue, storages, info, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if err = boot(ctx, services.SyncService, cfg.Push, log); err != nil {
		return err
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.Run(ctx)
}

// boot loads the persisted tree and installs the push configuration given
// through config sources, if any.
func boot(ctx context.Context, svc service.SyncService, push config.Push, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()

	if _, err := svc.Load(ctx).Wait(ctx); err != nil {
		return fmt.Errorf("error loading tree: %w", err)
	}

	if push.APIKey == "" {
		log.Info().Msg("no boot push config, waiting for PUT /api/sync/config")
		return nil
	}

	_, err := svc.Configure(ctx, models.PushConfig{
		APIKey:      push.APIKey,
		ReferenceID: push.ReferenceID,
		Tag:         push.Tag,
	}).Wait(ctx)
	if err != nil {
		return fmt.Errorf("error applying boot push config: %w", err)
	}
	return nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
