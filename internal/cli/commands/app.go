// Package commands implements the gridstack CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridstack-labs/gridstack/internal/adapter"
	"github.com/gridstack-labs/gridstack/internal/config"
	"github.com/gridstack-labs/gridstack/internal/discovery"
	"github.com/gridstack-labs/gridstack/internal/roles"
	"github.com/gridstack-labs/gridstack/internal/sandbox"
	"github.com/gridstack-labs/gridstack/internal/state"
	"github.com/gridstack-labs/gridstack/internal/widgets"
)

// App bundles the wired services for one command invocation.
type App struct {
	Config  *config.Config
	Store   *state.SQLiteStore
	DB      adapter.Adapter
	Service *widgets.Service
	Logger  *slog.Logger
}

// newApp assembles the service graph from the loaded configuration.
// The returned cleanup closes the data source and state store.
func newApp(cmd *cobra.Command) (*App, func(), error) {
	cfg, err := configFromCmd(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()

	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	store := state.NewSQLiteStore(logger)
	if cfg.StatePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	db, err := connectDataSource(ctx, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	service, err := widgets.New(widgets.Config{
		Widgets:     store,
		Order:       store,
		Permissions: roles.NewEvaluator(store, logger),
		Discovery:   discovery.New(db, cfg.HiddenEntities, logger),
		Queries:     db,
		Sandbox:     sandbox.New(sandbox.Config{MaxSteps: cfg.Sandbox.MaxSteps, Logger: logger}),
		Logger:      logger,
	})
	if err != nil {
		_ = db.Close()
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
		_ = store.Close()
	}

	return &App{
		Config:  cfg,
		Store:   store,
		DB:      db,
		Service: service,
		Logger:  logger,
	}, cleanup, nil
}

func connectDataSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (adapter.Adapter, error) {
	adapterCfg := cfg.AdapterConfig()
	db, err := adapter.NewAdapter(adapterCfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Connect(ctx, adapterCfg); err != nil {
		return nil, err
	}
	return db, nil
}
