package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/rates"
)

// loggerFor returns the debug logger when --debug is set.
func loggerFor(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return calculation.NopLogger{}
}

func loadSettings(cmd *cobra.Command) (*domain.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	settings, err := config.NewInputParser().LoadSettings(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// openStore builds the configured rate store and loads it. An empty or
// missing series is not an error; the store then answers with the default rate.
func openStore(ctx context.Context, settings *domain.Settings, logger calculation.Logger) (*rates.Store, error) {
	repo, err := rates.NewRepository(ctx, settings.Rates)
	if err != nil {
		return nil, err
	}
	store := rates.NewStore(repo)
	store.SetLogger(logger)
	if err := store.Load(ctx); err != nil && !errors.Is(err, rates.ErrNoData) {
		return nil, err
	}
	return store, nil
}

// newEngine creates a damages engine over the configured rate store. When the
// store cannot be read the engine runs without one and PJI uses its default rate.
func newEngine(cmd *cobra.Command) (*calculation.DamagesEngine, *domain.Settings, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := loggerFor(cmd)

	var source calculation.RateSource
	store, err := openStore(cmd.Context(), settings, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not load rate series: %v\n", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Falling back to the default PJI rate...")
	} else {
		source = store
	}

	engine := calculation.NewDamagesEngine(source)
	engine.SetLogger(logger)
	return engine, settings, nil
}
