// Serve command: runs the catalog HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/internal/httpapi"
	"github.com/nestfit/nestfit/internal/store"
	"github.com/nestfit/nestfit/pkg/types"
)

const (
	sqliteDBFileName = "nestfit.db"

	shutdownGrace = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := storageConfig()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.InitSchema(cmd.Context()); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}

		fixtureDir := config.GetString(cfgKeyFixtureDir)
		furniture, err := types.LoadFurnitureConditions(filepath.Join(fixtureDir, "furniture_condition.json"))
		if err != nil {
			return fmt.Errorf("load furniture conditions: %w", err)
		}
		rentals, err := types.LoadRentalConditions(filepath.Join(fixtureDir, "rental_condition.json"))
		if err != nil {
			return fmt.Errorf("load rental conditions: %w", err)
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		service := catalog.NewService(st, furniture, rentals, catalog.Options{
			Logger:  logger,
			Metrics: catalog.NewMetrics(registry),
		})
		handler := httpapi.NewHandler(service, logger, registry)

		server := &http.Server{
			Addr:    config.GetString(cfgKeyListenAddr),
			Handler: handler.Routes(),
		}

		errs := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", server.Addr, "driver", cfg.Driver)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errs:
			return fmt.Errorf("serve: %w", err)
		case sig := <-stop:
			logger.Info("shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

// storageConfig builds the storage configuration from config.yaml. When the
// sqlite driver has no explicit DSN, the database file lives under the
// resolved data directory.
func storageConfig() (types.Config, error) {
	cfg := types.Config{
		Driver: config.GetString(cfgKeyDriver),
		DSN:    config.GetString(cfgKeyDSN),
	}
	if cfg.Driver == types.DriverSQLite && cfg.DSN == "" {
		dataDir, err := resolveDataDir()
		if err != nil {
			return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return types.Config{}, fmt.Errorf("create data dir: %w", err)
		}
		cfg.DSN = filepath.Join(dataDir, sqliteDBFileName)
	}
	return cfg, cfg.Validate()
}
