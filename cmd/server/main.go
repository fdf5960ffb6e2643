// Package main is the entry point for the quantdash factor evaluation
// service. It builds the immutable factor registry and industry
// resolver (embedded defaults plus optional database overrides) and
// serves them over HTTP to the dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantdash/quantdash/internal/config"
	"github.com/quantdash/quantdash/internal/database"
	"github.com/quantdash/quantdash/internal/modules/factors"
	"github.com/quantdash/quantdash/internal/modules/industry"
	"github.com/quantdash/quantdash/internal/server"
	"github.com/quantdash/quantdash/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	registry, resolver := buildTables(cfg, log)

	srv := server.New(server.Config{
		Log:      log,
		Port:     cfg.Port,
		DevMode:  cfg.DevMode,
		Registry: registry,
		Resolver: resolver,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}

// buildTables constructs the immutable registry and resolver snapshots:
// embedded defaults, overlaid with any overrides found in the analysis
// database. The database is read exactly once; a missing or unreadable
// database degrades to the embedded defaults.
func buildTables(cfg *config.Config, log zerolog.Logger) (*factors.Registry, *industry.Resolver) {
	factorDefs, err := factors.LoadDefaultDefinitions()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded factor definitions")
	}
	mappings, benchmarks, err := industry.LoadDefaultMappings()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded industry mappings")
	}

	if db, err := database.New(database.Config{Path: cfg.AnalysisDBPath, Name: "analysis"}); err != nil {
		log.Warn().Err(err).Msg("Analysis database unavailable, using embedded defaults")
	} else {
		defer db.Close()

		if repo, err := factors.NewOverrideRepository(db.Conn(), log); err != nil {
			log.Warn().Err(err).Msg("Factor override schema unavailable")
		} else if overrides, err := repo.LoadAll(); err != nil {
			log.Warn().Err(err).Msg("Failed to load factor overrides")
		} else {
			factorDefs = factors.MergeOverrides(factorDefs, overrides)
		}

		if repo, err := industry.NewOverrideRepository(db.Conn(), log); err != nil {
			log.Warn().Err(err).Msg("Industry override schema unavailable")
		} else if overrides, err := repo.LoadAll(); err != nil {
			log.Warn().Err(err).Msg("Failed to load industry overrides")
		} else {
			mappings = industry.MergeOverrides(mappings, overrides)
		}
	}

	registry, err := factors.NewRegistry(factorDefs)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid factor definition table")
	}
	resolver, err := industry.NewResolver(mappings, benchmarks)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid industry mapping table")
	}

	log.Info().
		Int("factors", len(factorDefs)).
		Int("industries", len(mappings)).
		Msg("Built immutable configuration tables")

	return registry, resolver
}
