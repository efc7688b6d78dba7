package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	rootCmd.SetOut(&stderr)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		flagConfig, flagDataDir, flagLogLevel, flagLogFormat = "", "", "", ""
	})
	err := rootCmd.ExecuteContext(context.Background())
	return stderr.String(), err
}

func TestStructureCommand(t *testing.T) {
	dataDir := t.TempDir()
	extracted, err := output.New(filepath.Join(dataDir, "extracted"))
	require.NoError(t, err)
	_, err = extracted.WriteJSON("cours/theoreme_de_thales.json", core.ExtractedUnit{
		PDFFile:      "theoreme_de_thales.pdf",
		RelativePath: "cours/theoreme_de_thales.pdf",
		Content:      "Le theoreme de Thales dans le triangle",
	})
	require.NoError(t, err)

	logs, err := execute(t, "structure", "--data_dir", dataDir, "--log_format", "json")
	require.NoError(t, err)
	assert.Contains(t, logs, `"message":"structuring done"`)

	var doc core.StructuredDocument
	raw := &output.Writer{OutputDir: filepath.Join(dataDir, "raw")}
	require.NoError(t, raw.ReadJSON("cours/thales.json", &doc))
	assert.Equal(t, "theoreme de thales", doc.Title)
}

func TestDownloadCommand_RequiresCandidates(t *testing.T) {
	_, err := execute(t, "download", "--data_dir", t.TempDir(), "--log_level", "error")
	assert.ErrorContains(t, err, "run discover first")
}

func TestConfigFlag_RejectsInvalidFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sources:\n  - type: video\n    url: x\n"), 0644))

	_, err := execute(t, "extract", "--config", p)
	assert.ErrorContains(t, err, "unknown type")
}
