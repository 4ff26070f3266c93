// Package main is the entry point for the zen bot
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/config"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath string
	logMode    string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zen",
	Short: "Zen compendium bot",
	Long:  `Zen looks up feats, spells, maneuvers and conditions and posts them to chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-mode") {
			loaded.Log.Mode = logMode
		}

		l, err := logger.New(loaded.Log.Mode)
		if err != nil {
			return err
		}
		cfg, log = loaded, l.With(zap.String("version", version))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync() // nolint:errcheck // stderr sync fails on some terminals
		}
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("ZEN_CONFIG"), "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "production or development")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(blacklistCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(healthCmd)
}
