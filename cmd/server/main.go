// Command server runs the rolodex contact-management API.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, ROLODEX_CONFIG, ./config.yaml, /etc/rolodex/config.yaml),
// and ROLODEX_* environment variable overrides. See pkg/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rolodex-dev/rolodex/pkg/auth"
	"github.com/rolodex-dev/rolodex/pkg/auth/session"
	"github.com/rolodex-dev/rolodex/pkg/blob"
	"github.com/rolodex-dev/rolodex/pkg/config"
	"github.com/rolodex-dev/rolodex/pkg/debug"
	"github.com/rolodex-dev/rolodex/pkg/storage"
	"github.com/rolodex-dev/rolodex/pkg/storage/memory"
	"github.com/rolodex-dev/rolodex/pkg/storage/postgres"
	transporthttp "github.com/rolodex-dev/rolodex/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	debug.Init("", "INFO")
	logger := slog.Default()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	blobs, err := blob.New(cfg.Files.Dir)
	if err != nil {
		return err
	}

	sessions := session.New(store, cfg.Auth.TokenHeader)
	chain := &auth.Chain{
		Authenticators:  []auth.Authenticator{sessions},
		DefaultDecision: auth.No,
	}

	srv := transporthttp.NewServer(sessions, chain, store, blobs,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetrics(cfg.Observability.Metrics.Enabled, cfg.Observability.Metrics.Path),
		transporthttp.WithLogger(logger),
	)

	return srv.ListenAndServe()
}

// openStore creates the configured storage backend.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "postgres":
		store, err := postgres.New(context.Background(), postgres.Config{
			DSN:             cfg.Storage.Postgres.DSN,
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			MaxConnLifetime: cfg.Storage.Postgres.MaxConnLife,
			MigrateOnStart:  cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		logger.Info("storage enabled", "type", "postgres")
		return store, nil
	default:
		logger.Info("storage enabled", "type", "memory")
		return memory.New(), nil
	}
}
