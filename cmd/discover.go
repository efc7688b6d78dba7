package cmd

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/studyharvest/core/fetch"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/gaurav-prasanna/studyharvest/crawl"
	"github.com/gaurav-prasanna/studyharvest/logging"
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scrape the seed pages for maths PDF links",
	Long: `Discover fetches every configured seed page, keeps the links that look like
3eme maths PDFs, follows annale landing pages one level deep and writes the
deduplicated list to urls.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDiscover(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(ctx context.Context) error {
	logger := logging.Get("discover")

	fetcher := fetch.New(cfg.HTTP.PageTimeout(), cfg.HTTP.UserAgent)
	harvester := crawl.NewHarvester(fetcher, logger)

	links, err := harvester.Harvest(ctx, cfg.Seeds())
	if err != nil {
		return fmt.Errorf("discovering links: %w", err)
	}

	writer, err := output.New(cfg.Paths.DataRoot)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteJSON(cfg.Paths.URLs, links)
	if err != nil {
		return err
	}
	logger.Info().Int("urls", len(links)).Str("path", path).Msg("saved urls")
	return nil
}
