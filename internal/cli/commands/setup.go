// Package commands implements the nlsplit subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nlogo-labs/nlsplit/internal/cli/config"
	"github.com/nlogo-labs/nlsplit/internal/state"
)

// getConfig returns the loaded configuration, or defaults when the root
// command's config loading was skipped (e.g. in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputDir:         config.DefaultOutputDir,
		RepetitionsPerRun: config.DefaultRepetitionsPerRun,
		StatePath:         config.DefaultStateFile,
	}
}

// openStore opens the split-history store, creating its directory first.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	dir := filepath.Dir(cfg.StatePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	return store, nil
}
