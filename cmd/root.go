// Package cmd implements the CLI commands for studyharvest using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gaurav-prasanna/studyharvest/config"
	"github.com/gaurav-prasanna/studyharvest/logging"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagConfig    string
	flagDataDir   string
	flagLogLevel  string
	flagLogFormat string
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "studyharvest",
	Short: "studyharvest — collect and structure 3eme maths PDFs",
	Long: `studyharvest is an offline batch pipeline that finds maths PDFs for the
3eme / BEPC curriculum, downloads them, extracts their text and splits it
into chapter-tagged JSON documents.

Stages:
  studyharvest discover    # seed pages -> urls.json
  studyharvest download    # urls.json -> pdfs/
  studyharvest extract     # pdfs/ -> extracted/
  studyharvest structure   # extracted/ -> raw/
  studyharvest run         # all of the above`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (default: built-in sources)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data_dir", "", "Data directory (overrides paths.data_root)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log_format", "", "Log format: pretty or json")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		loaded.Paths.DataRoot = flagDataDir
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		loaded.Log.Format = flagLogFormat
	}

	if err := logging.Setup(logging.Config{Level: loaded.Log.Level, Format: loaded.Log.Format}, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	cfg = loaded
	return nil
}
