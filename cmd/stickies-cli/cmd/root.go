package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stickies/internal/logging"
	"stickies/internal/setup"
)

var (
	opts setup.Options
	env  *setup.Env
)

var rootCmd = &cobra.Command{
	Use:   "stickies-cli",
	Short: "CLI for a folder of sticky notes",
	Long: `stickies-cli manages the sticky notes kept in a folder of an Obsidian vault.

It shares its order, colors and sort mode with the stickies board, so a note
moved here shows up in the same place there.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := setup.Load(opts)
		if err != nil {
			return err
		}
		if err := setup.InitLogging(cfg, "stderr"); err != nil {
			return err
		}
		logging.SetLevel(logLevel(cfg.LogLevel))

		env, err = setup.Open(cmd.Context(), cfg, opts.Ephemeral)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Sync()
		if env == nil {
			return nil
		}
		return env.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a config file")
	rootCmd.PersistentFlags().StringVarP(&opts.Vault, "vault", "v", "", "path to the vault")
	rootCmd.PersistentFlags().StringVarP(&opts.Folder, "folder", "f", "", "notes folder inside the vault")
	rootCmd.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "do not persist order, colors or sort mode")
}

// logLevel keeps command output readable: only warnings and errors reach stderr
// unless debug logging is configured.
func logLevel(configured string) string {
	if configured == "debug" {
		return configured
	}
	return "warn"
}

// GetEnv returns the initialized environment
func GetEnv() *setup.Env {
	return env
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
