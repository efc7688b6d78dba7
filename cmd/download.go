package cmd

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/fetch"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/gaurav-prasanna/studyharvest/logging"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the PDFs listed in urls.json",
	Long: `Download saves each candidate of urls.json under pdfs/<source dir>/.
Files already present are skipped, so the command can be rerun after failures.
A report and the list of failed URLs are written next to urls.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDownload(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(ctx context.Context) error {
	logger := logging.Get("download")

	files, err := output.New(cfg.Paths.DataRoot)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	var candidates []core.LinkCandidate
	if err := files.ReadJSON(cfg.Paths.URLs, &candidates); err != nil {
		return fmt.Errorf("loading candidates (run discover first): %w", err)
	}

	downloader := fetch.NewDownloader(files, cfg.Paths.PDFs, fetch.DownloadOptions{
		Timeout:   cfg.HTTP.DownloadTimeout(),
		UserAgent: cfg.HTTP.UserAgent,
		Delay:     cfg.HTTP.DownloadDelay(),
	}, logger)

	report, runErr := downloader.Run(ctx, candidates)

	// Persist what was done even if the run was interrupted.
	if _, err := files.WriteJSON(cfg.Paths.Report, report); err != nil {
		return err
	}
	if _, err := files.WriteJSON(cfg.Paths.Failed, report.Failures()); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("downloading: %w", runErr)
	}

	s := report.Summary
	logger.Info().
		Int("downloaded", s.Downloaded).
		Int("skipped_existing", s.SkippedExisting).
		Int("failed", s.Failed).
		Msg("download summary")
	return nil
}
