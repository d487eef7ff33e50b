package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/rivercross/internal/cli"
	"github.com/aretw0/rivercross/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
	sigCtx *cli.SignalContext
)

var rootCmd = &cobra.Command{
	Use:   "rivercross",
	Short: "Rivercross solves river-crossing puzzles",
	Long: `Rivercross enumerates the legal states of a river-crossing puzzle, the crossings
between them and every solution path, from puzzle definitions kept in plain files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err = cli.NewLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	sigCtx = cli.NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if err := rootCmd.ExecuteContext(sigCtx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the puzzle definitions")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./rivercross.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}

// openEngine builds the engine for a command from the loaded configuration.
func openEngine(cmd *cobra.Command) (*cli.Engine, error) {
	file, _ := cmd.Flags().GetString("file")
	return cli.CreateEngine(cmd.Context(), cli.EngineOptions{Config: cfg, File: file}, logger)
}

// addSourceFlags registers the flags every solving command shares.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Solve a single definition file instead of a puzzle in --dir")
	cmd.Flags().Int("limit", config.DefaultPathLimit, "Stop after this many paths (0 = all; larger puzzles can have hundreds of thousands)")
	cmd.Flags().Bool("cache", false, "Cache solutions under <dir>/.rivercross")
	cmd.Flags().String("redis-addr", "", "Cache solutions in Redis at this address")
}
