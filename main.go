// Package main is the entry point for the items API.
// It wires configuration, storage and the HTTP server behind a small CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"itemsapi/src/app/server"
	"itemsapi/src/infra/config"
	"itemsapi/src/infra/db"
	"itemsapi/src/infra/logger"
	"itemsapi/src/infra/metrics"
	"itemsapi/src/infra/repo"
)

const defaultEnvFile = ".env"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "itemsapi",
		Short:         "HTTP API over an items table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(envFile)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply the items schema to the configured database",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{db.MigrateUp, db.MigrateDown, db.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := db.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}
			return migrate(cmd.Context(), command)
		},
	})

	return root
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing default file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultEnvFile {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"store_driver", string(cfg.Store.Driver),
	)

	m := metrics.New()
	gate := config.NewGate(cfg.Store.Driver)
	if missing := gate.Missing(); len(missing) > 0 {
		log.Warn("database not configured, data routes will answer 503", "missing", missing)
	}

	// Relational stores connect lazily on the first data request
	store, err := repo.NewStore(cfg, gate, log, m)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(cfg, log, server.Deps{
		Items:   store.Items,
		Config:  gate,
		Metrics: m,
	})

	// Run blocks until shutdown signal is received
	return srv.Run()
}

func migrate(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	if cfg.Store.Driver == config.DriverMemory {
		return errors.New("migrate needs STORE_DRIVER=postgres or STORE_DRIVER=mssql")
	}
	return db.Migrate(ctx, config.NewGate(cfg.Store.Driver), cfg.Store.Driver, command, log)
}
