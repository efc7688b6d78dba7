package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultDownloadTimeout bounds a single PDF download.
const DefaultDownloadTimeout = 60 * time.Second

// DownloadOptions tunes a Downloader. Zero values select the defaults.
type DownloadOptions struct {
	Timeout   time.Duration
	UserAgent string
	// Delay is the minimum spacing between two requests. Zero disables pacing.
	Delay time.Duration
}

// Downloader saves candidate PDFs below <data root>/<pdfDir>/<source dir>/.
type Downloader struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	files     *output.Writer
	pdfDir    string
	log       zerolog.Logger
}

// NewDownloader creates a Downloader writing through files.
func NewDownloader(files *output.Writer, pdfDir string, opts DownloadOptions, logger zerolog.Logger) *Downloader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDownloadTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &Downloader{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
		files:     files,
		pdfDir:    pdfDir,
		log:       logger,
	}
}

// Run downloads every candidate in order. Files already on disk are skipped,
// so a rerun only fetches what is missing. Per-item failures are recorded in
// the report and never stop the run.
func (d *Downloader) Run(ctx context.Context, candidates []core.LinkCandidate) (*core.DownloadReport, error) {
	report := &core.DownloadReport{
		Summary: core.DownloadSummary{
			TotalURLs: len(candidates),
			DownloadedBySourceType: map[core.SourceType]int{
				core.SourceCours: 0, core.SourceExercice: 0, core.SourceAnnale: 0, core.SourceLivre: 0,
			},
		},
		Items: make([]core.DownloadItem, 0, len(candidates)),
	}

	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		if c.SourceType == "" {
			c.SourceType = core.SourceCours
		}
		if c.Title == "" {
			c.Title = "document"
		}

		rel := path.Join(d.pdfDir, output.SourceDirName(c.SourceType), output.InferFilename(c.Title, c.URL))
		item := core.DownloadItem{URL: c.URL, Title: c.Title, SourceType: c.SourceType, File: rel}

		if d.files.Exists(rel) {
			item.Status, item.Reason = core.StatusSkippedExisting, "already_exists"
			report.Summary.SkippedExisting++
			report.Items = append(report.Items, item)
			continue
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return report, err
		}

		if reason, err := d.download(ctx, c.URL, rel); err != nil {
			item.Status, item.Reason, item.File = core.StatusFailed, reason, ""
			report.Summary.Failed++
			d.log.Warn().Str("url", c.URL).Str("reason", reason).Msg("download failed")
		} else {
			item.Status, item.Reason = core.StatusDownloaded, "downloaded"
			report.Summary.Downloaded++
			report.Summary.DownloadedBySourceType[c.SourceType]++
			d.log.Info().Str("file", path.Base(rel)).Msg("downloaded")
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// download fetches url into rel. On failure it returns a short reason code
// for the report along with the underlying error.
func (d *Downloader) download(ctx context.Context, url, rel string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "request_error:" + err.Error(), err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "request_error:" + err.Error(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "request_error:" + err.Error(), err
	}
	if _, err := d.files.WriteFile(rel, data); err != nil {
		return "write_error:" + err.Error(), err
	}
	return "", nil
}
