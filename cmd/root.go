package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/config"
	"github.com/mobiflow/hubopt/internal/dataset"
	"github.com/mobiflow/hubopt/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hubopt",
	Short: "Mobility hub placement for Dublin",
	Long:  "Scores candidate mobility hub locations against bike share, bus, and Luas coverage and searches a city grid for the best placements.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newBikeClient builds the live feed client, or nil when no API key is
// configured so callers fall straight through to the sample data.
func newBikeClient() *dataset.JCDecauxClient {
	if cfg.JCDecaux.APIKey == "" {
		zap.L().Debug("HUBOPT_JCDECAUX_API_KEY not set, live bike feed disabled")
		return nil
	}
	return dataset.NewJCDecauxClient(dataset.JCDecauxOptions{
		BaseURL:  cfg.JCDecaux.BaseURL,
		Contract: cfg.JCDecaux.Contract,
		APIKey:   cfg.JCDecaux.APIKey,
		Timeout:  time.Duration(cfg.JCDecaux.TimeoutSecs) * time.Second,
	})
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
