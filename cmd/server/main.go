// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Command server runs the Reelrank HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/library"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/persist"
	"github.com/tomtom215/reelrank/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()
	logger.Info().
		Int("port", cfg.Server.Port).
		Bool("persistence", cfg.Persistence.Enabled).
		Msg("starting reelrank")

	store := library.NewStore(logger)

	var snapshots *persist.Store
	if cfg.Persistence.Enabled {
		snapshots, err = persist.Open(cfg.Persistence.Path, logger)
		if err != nil {
			return fmt.Errorf("open persistence: %w", err)
		}
		defer func() {
			if err := snapshots.Close(); err != nil {
				logger.Error().Err(err).Msg("close persistence failed")
			}
		}()

		movies, users, err := snapshots.Load()
		if err != nil {
			return fmt.Errorf("restore state: %w", err)
		}
		store.Import(movies, users)
	}

	if cfg.Library.SeedSampleData {
		store.SeedSampleCatalog()
	}

	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultK: cfg.Recommend.DefaultK,
		MaxK:     cfg.Recommend.MaxK,
	}, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	engine.SetDataProvider(store)

	router := api.NewRouter(store, engine, cfg.Security, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if cfg.Persistence.Enabled {
		snapshotter := persist.NewSnapshotter(snapshots, store, cfg.Persistence.SnapshotInterval, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshotter.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}

	// Wait for the snapshotter's final save before closing the database.
	wg.Wait()

	logger.Info().Msg("shutdown complete")
	return nil
}
