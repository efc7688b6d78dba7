package structure

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

// Stats summarizes a structure run.
type Stats struct {
	Units     int
	Skipped   int
	Failed    int
	Documents int
}

// Runner structures every extracted unit below a directory.
type Runner struct {
	writer *output.Writer
	log    zerolog.Logger
}

// NewRunner creates a Runner writing documents through writer.
func NewRunner(writer *output.Writer, logger zerolog.Logger) *Runner {
	return &Runner{writer: writer, log: logger}
}

// Run processes every *.json unit below extractedRoot in lexical order.
// Existing outputs are always overwritten. A unit that cannot be read or
// structured is logged and counted; it never stops the run.
func (r *Runner) Run(ctx context.Context, extractedRoot string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(extractedRoot)
	if err != nil {
		return stats, fmt.Errorf("extracted directory %s: %w", extractedRoot, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("extracted path %s is not a directory", extractedRoot)
	}

	err = filepath.WalkDir(extractedRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		stats.Units++
		unit, err := readUnit(p)
		if err != nil {
			stats.Failed++
			r.log.Error().Err(err).Str("file", p).Msg("unreadable unit")
			return nil
		}
		if unit.Skipped() {
			stats.Skipped++
			r.log.Info().Str("file", unit.RelativePath).Msg("skip scanned file")
			return nil
		}

		docs, err := Build(unit)
		if err != nil {
			stats.Failed++
			r.log.Error().Err(err).Str("file", p).Msg("structuring failed")
			return nil
		}
		for i, doc := range docs {
			written, err := r.writer.WriteJSON(OutputPath(doc, i), doc)
			if err != nil {
				stats.Failed++
				r.log.Error().Err(err).Str("title", doc.Title).Msg("write failed")
				continue
			}
			stats.Documents++
			r.log.Info().Str("path", written).Msg("structured")
		}
		return nil
	})
	return stats, err
}

// readUnit decodes an extracted unit. A missing pdfFile falls back to the
// unit's own file name.
func readUnit(p string) (core.ExtractedUnit, error) {
	var unit core.ExtractedUnit
	dir, name := filepath.Split(p)
	w := &output.Writer{OutputDir: dir}
	if err := w.ReadJSON(name, &unit); err != nil {
		return unit, err
	}
	if unit.PDFFile == "" {
		unit.PDFFile = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return unit, nil
}
