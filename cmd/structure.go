package cmd

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/gaurav-prasanna/studyharvest/core/structure"
	"github.com/gaurav-prasanna/studyharvest/logging"
	"github.com/spf13/cobra"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Turn extracted text into chapter-tagged JSON documents",
	Long: `Structure cleans every extracted unit, tags it with a chapter, exam year and
zone, splits long texts into parts and writes them under raw/<source dir>/.
Existing documents are overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStructure(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(structureCmd)
}

func runStructure(ctx context.Context) error {
	logger := logging.Get("structure")

	out, err := output.New(cfg.Paths.In(cfg.Paths.Raw))
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	stats, err := structure.NewRunner(out, logger).Run(ctx, cfg.Paths.In(cfg.Paths.Extracted))
	if err != nil {
		return fmt.Errorf("structuring (run extract first): %w", err)
	}
	logger.Info().
		Int("units", stats.Units).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Int("documents", stats.Documents).
		Msg("structuring done")
	return nil
}
