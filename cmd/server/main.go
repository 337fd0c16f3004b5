package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/handler"
	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/server"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/tracing"
	"github.com/MKhiriev/planner-sync/internal/workers"
	"github.com/MKhiriev/planner-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	ctx := context.Background()

	log := logger.NewLogger("planner-sync-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("server", cfg.Server).Any("rate_limit", cfg.RateLimit).Msg("received configs")

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	tracer, err := tracing.New(ctx, cfg.Tracing, info.BuildVersion(), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating tracer")
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Err(err).Msg("error shutting down tracer")
		}
	}()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(context.Background()); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, info, tracer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	rateLimiter := limiter.NewFixedWindow(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)

	handlers, err := handler.NewHandlers(services, rateLimiter, tracer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(
		workers.NewRateLimitJanitor(rateLimiter, cfg.RateLimit.CleanupInterval, log),
	)

	srv, err := server.NewServer(handlers, bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
		return
	}

	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
