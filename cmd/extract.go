package cmd

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/studyharvest/core/extract"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/gaurav-prasanna/studyharvest/logging"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract plain text from the downloaded PDFs",
	Long: `Extract writes one JSON unit per PDF under extracted/, mirroring the pdfs/
tree. PDFs that already have a unit are skipped. Scanned or unreadable files
are recorded with isScanned=true and excluded from structuring.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExtract(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(ctx context.Context) error {
	logger := logging.Get("extract")

	out, err := output.New(cfg.Paths.In(cfg.Paths.Extracted))
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	runner := extract.NewRunner(extract.New(cfg.Extract.MaxPages), out, logger)
	stats, err := runner.Run(ctx, cfg.Paths.In(cfg.Paths.PDFs))
	if err != nil {
		return fmt.Errorf("extracting (run download first): %w", err)
	}
	logger.Info().
		Int("processed", stats.Processed).
		Int("scanned_or_empty", stats.ScannedSkipped).
		Msg("extraction done")
	return nil
}
