// Command nestbox opens the nested box editor, replays input scripts
// headlessly and prints box trees.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	logLevel   string

	cfg    Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "nestbox",
		Short:         "A nested box editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
			}
			cfg = c
			logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Open the editor window",
		Args:  cobra.NoArgs,
		RunE:  runWindow, // Defined in cmd_run.go
	}

	replayCmd = &cobra.Command{
		Use:   "replay SCRIPT",
		Short: "Replay an input script headlessly and write its snapshots as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay, // Defined in cmd_replay.go
	}

	treeCmd = &cobra.Command{
		Use:   "tree [SCRIPT]",
		Short: "Print the box tree, optionally after replaying a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTree, // Defined in cmd_tree.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $NESTBOX_CONFIG or ~/.config/nestbox/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	runCmd.Flags().Bool("debug", false, "check tree invariants after every mutation")

	replayCmd.Flags().String("out", "", "output directory (default from config)")
	replayCmd.Flags().Bool("watch", false, "replay again whenever the script changes")

	treeCmd.Flags().Bool("clipboard", false, "also copy the plain tree to the clipboard")

	rootCmd.AddCommand(runCmd, replayCmd, treeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "nestbox:", err)
		os.Exit(1)
	}
}
