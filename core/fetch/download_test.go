package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPDFServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/thales.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 thales"))
	})
	mux.HandleFunc("/docs/pythagore.pdf", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 pythagore"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloader_Run(t *testing.T) {
	srv := newPDFServer(t)
	files, err := output.New(t.TempDir())
	require.NoError(t, err)

	_, err = files.WriteFile("pdfs/cours/pythagore_pythagore.pdf", []byte("old"))
	require.NoError(t, err)

	candidates := []core.LinkCandidate{
		{URL: srv.URL + "/docs/thales.pdf", Title: "Sujet BEPC", SourceType: core.SourceAnnale},
		{URL: srv.URL + "/docs/pythagore.pdf", Title: "Pythagore", SourceType: core.SourceCours},
		{URL: srv.URL + "/docs/missing.pdf", Title: "Manquant", SourceType: core.SourceExercice},
		{URL: "", Title: "sans url", SourceType: core.SourceCours},
		{URL: srv.URL + "/docs/thales.pdf"},
	}

	d := NewDownloader(files, "pdfs", DownloadOptions{}, zerolog.Nop())
	report, err := d.Run(context.Background(), candidates)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Summary.TotalURLs)
	assert.Equal(t, 2, report.Summary.Downloaded)
	assert.Equal(t, 1, report.Summary.SkippedExisting)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, map[core.SourceType]int{
		core.SourceCours: 1, core.SourceExercice: 0, core.SourceAnnale: 1, core.SourceLivre: 0,
	}, report.Summary.DownloadedBySourceType)

	require.Len(t, report.Items, 4)
	assert.Equal(t, core.DownloadItem{
		URL: srv.URL + "/docs/thales.pdf", Title: "Sujet BEPC", SourceType: core.SourceAnnale,
		File: "pdfs/annales/sujet_bepc_thales.pdf", Status: core.StatusDownloaded, Reason: "downloaded",
	}, report.Items[0])
	assert.Equal(t, core.StatusSkippedExisting, report.Items[1].Status)
	assert.Equal(t, "already_exists", report.Items[1].Reason)
	assert.Equal(t, core.StatusFailed, report.Items[2].Status)
	assert.Equal(t, "http_404", report.Items[2].Reason)
	assert.Empty(t, report.Items[2].File)

	// Missing source type and title fall back to cours and "document".
	assert.Equal(t, "pdfs/cours/document_thales.pdf", report.Items[3].File)
	assert.Equal(t, core.SourceCours, report.Items[3].SourceType)

	data, err := os.ReadFile(files.Path("pdfs/annales/sujet_bepc_thales.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 thales", string(data))

	old, err := os.ReadFile(files.Path("pdfs/cours/pythagore_pythagore.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(old))

	assert.Equal(t, []core.DownloadFailure{{
		URL: srv.URL + "/docs/missing.pdf", Title: "Manquant", SourceType: core.SourceExercice, Reason: "http_404",
	}}, report.Failures())
}

func TestDownloader_RequestError(t *testing.T) {
	files, err := output.New(t.TempDir())
	require.NoError(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL + "/a.pdf"
	srv.Close()

	d := NewDownloader(files, "pdfs", DownloadOptions{}, zerolog.Nop())
	report, err := d.Run(context.Background(), []core.LinkCandidate{
		{URL: deadURL, Title: "A", SourceType: core.SourceLivre},
	})
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Contains(t, report.Items[0].Reason, "request_error:")
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestDownloader_CancelledContext(t *testing.T) {
	srv := newPDFServer(t)
	files, err := output.New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader(files, "pdfs", DownloadOptions{Delay: 1}, zerolog.Nop())
	report, err := d.Run(ctx, []core.LinkCandidate{
		{URL: srv.URL + "/docs/thales.pdf", Title: "Thales", SourceType: core.SourceCours},
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Items)
}
