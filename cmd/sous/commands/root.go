// Package commands implements the sous CLI.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/socialchef/sous/internal/config"
	"github.com/socialchef/sous/internal/logger"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sous",
		Short: "Ask a language model for a recipe and its ingredient list",
		Long: `sous asks a language model for a recipe, then asks again for the
ingredients of that recipe as structured data and prints both.

Examples:
  # Recipe and ingredient table
  sous ask Lasagna

  # Same answer as the HTTP API returns it
  sous ask "Pad Thai" --format json

  # Use another config file
  sous ask Ramen --config ./config.local.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "config.yaml", "config file with model and pipeline settings")
	cmd.AddCommand(newAskCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// loadConfig reads the config file named by --config. Logging goes to stderr
// so stdout only carries the answer.
func loadConfig(cmd *cobra.Command, stderr io.Writer) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.NewWithWriter(cfg.Env, stderr))
	return cfg, nil
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
