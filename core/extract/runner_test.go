package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textExtractor returns the file bytes as text, or fails on "broken".
type textExtractor struct{ calls int }

func (e *textExtractor) Extract(data []byte) (string, error) {
	e.calls++
	if string(data) == "broken" {
		return "", errors.New("failed to parse PDF")
	}
	return string(data), nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestRunner_Run(t *testing.T) {
	root := t.TempDir()
	pdfRoot := filepath.Join(root, "pdfs")
	long := strings.Repeat("Theoreme de Pythagore. ", 5)

	writeFile(t, pdfRoot, "cours/pythagore.pdf", long)
	writeFile(t, pdfRoot, "annales/scan.pdf", "  ")
	writeFile(t, pdfRoot, "annales/broken.pdf", "broken")
	writeFile(t, pdfRoot, "annales/readme.txt", "ignored")

	out, err := output.New(filepath.Join(root, "extracted"))
	require.NoError(t, err)
	extractor := &textExtractor{}
	runner := NewRunner(extractor, out, zerolog.Nop())

	stats, err := runner.Run(context.Background(), pdfRoot)
	require.NoError(t, err)
	assert.Equal(t, Stats{Processed: 3, ScannedSkipped: 2}, stats)

	var unit core.ExtractedUnit
	require.NoError(t, out.ReadJSON("cours/pythagore.json", &unit))
	assert.Equal(t, core.ExtractedUnit{
		PDFFile:      "pythagore.pdf",
		RelativePath: "cours/pythagore.pdf",
		Content:      long,
	}, unit)

	require.NoError(t, out.ReadJSON("annales/scan.json", &unit))
	assert.True(t, unit.IsScanned)
	assert.Empty(t, unit.Error)

	require.NoError(t, out.ReadJSON("annales/broken.json", &unit))
	assert.True(t, unit.IsScanned)
	assert.Equal(t, "failed to parse PDF", unit.Error)
	assert.Empty(t, unit.Content)

	// A second run leaves existing units alone.
	stats, err = runner.Run(context.Background(), pdfRoot)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Equal(t, 3, extractor.calls)
}

func TestRunner_RealPDF(t *testing.T) {
	root := t.TempDir()
	pdfRoot := filepath.Join(root, "pdfs")
	data := samplePDF(t, []string{"Lecon 4 : Theoreme de Thales", "Dans un triangle ABC, si M appartient a [AB]"})
	writeFile(t, pdfRoot, "cours/thales.pdf", string(data))

	out, err := output.New(filepath.Join(root, "extracted"))
	require.NoError(t, err)

	stats, err := NewRunner(New(0), out, zerolog.Nop()).Run(context.Background(), pdfRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	var unit core.ExtractedUnit
	require.NoError(t, out.ReadJSON("cours/thales.json", &unit))
	assert.Contains(t, unit.Content, "Thales")
	assert.False(t, unit.IsScanned)
}

func TestRunner_MissingDirectory(t *testing.T) {
	out, err := output.New(t.TempDir())
	require.NoError(t, err)

	_, err = NewRunner(New(0), out, zerolog.Nop()).Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
