package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "healthatlas",
	Short: "Healthcare accessibility analysis for Istanbul",
	Long:  "Collects healthcare facility data from OpenStreetMap, joins it with district boundaries, and computes per-district accessibility scores, coverage buffers, and maps.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
