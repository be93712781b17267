package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridstack-labs/gridstack/internal/config"
)

// configKey is used to store config in the command context.
type configKey struct{}

// WithConfig stores the loaded config in a context for command access.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromCmd retrieves the loaded config from the command context.
func configFromCmd(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
