package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/output"
	"github.com/rs/zerolog"
)

// Stats summarizes an extract run.
type Stats struct {
	Processed      int
	ScannedSkipped int
}

// Runner extracts every PDF below a directory into ExtractedUnit JSON files.
type Runner struct {
	extractor core.TextExtractor
	out       *output.Writer
	log       zerolog.Logger
}

// NewRunner creates a Runner writing units through out.
func NewRunner(extractor core.TextExtractor, out *output.Writer, logger zerolog.Logger) *Runner {
	return &Runner{extractor: extractor, out: out, log: logger}
}

// Run walks pdfRoot and writes <relative path>.json for each PDF that has
// no unit yet. Extraction failures are stored as scanned units carrying the
// error message.
func (r *Runner) Run(ctx context.Context, pdfRoot string) (Stats, error) {
	var stats Stats
	if _, err := os.Stat(pdfRoot); err != nil {
		return stats, fmt.Errorf("pdf directory %s: %w", pdfRoot, err)
	}

	err := filepath.WalkDir(pdfRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".pdf" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(pdfRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		unitPath := strings.TrimSuffix(rel, ".pdf") + ".json"
		if r.out.Exists(unitPath) {
			return nil
		}

		r.log.Info().Str("file", rel).Msg("extracting")
		unit := r.extractFile(p, rel)
		if _, err := r.out.WriteJSON(unitPath, unit); err != nil {
			return err
		}

		stats.Processed++
		if unit.IsScanned {
			stats.ScannedSkipped++
			if unit.Error != "" {
				r.log.Warn().Str("file", rel).Str("error", unit.Error).Msg("failed to extract")
			} else {
				r.log.Warn().Str("file", rel).Msg("scanned or empty text")
			}
		}
		return nil
	})
	return stats, err
}

func (r *Runner) extractFile(p, rel string) core.ExtractedUnit {
	unit := core.ExtractedUnit{PDFFile: filepath.Base(p), RelativePath: rel}

	data, err := os.ReadFile(p)
	if err == nil {
		var text string
		text, err = r.extractor.Extract(data)
		if err == nil {
			unit.Content = text
			unit.IsScanned = DetectScanned(text)
			return unit
		}
	}
	unit.IsScanned = true
	unit.Error = err.Error()
	return unit
}
