// Command showdown builds Showdown cards from season stat lines.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/showdownbot/chart-engine/internal/config"
	"github.com/showdownbot/chart-engine/internal/logger"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "showdown",
		Short:        "Build Showdown charts, points and simulations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = c
			logger.Init(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./showdown.yaml)")

	rootCmd.AddCommand(newCardCmd(), newSetsCmd(), newSimulateCmd())
	return rootCmd
}
