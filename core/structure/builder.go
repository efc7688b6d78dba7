// Package structure turns extracted PDF text into structured study documents.
// Each ExtractedUnit is cleaned, classified and chunked independently; one
// unit yields one StructuredDocument per chunk.
package structure

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/core/chunk"
	"github.com/gaurav-prasanna/studyharvest/core/classify"
	"github.com/gaurav-prasanna/studyharvest/core/normalize"
	"github.com/gaurav-prasanna/studyharvest/core/output"
)

// ErrInvalidUnit is returned for units missing fields needed to classify them.
var ErrInvalidUnit = errors.New("invalid extracted unit")

// Build structures one unit. Scanned or failed units produce no documents.
func Build(unit core.ExtractedUnit) ([]core.StructuredDocument, error) {
	if unit.Skipped() {
		return nil, nil
	}
	if unit.RelativePath == "" {
		return nil, fmt.Errorf("%w: missing relativePath", ErrInvalidUnit)
	}
	if unit.PDFFile == "" {
		return nil, fmt.Errorf("%w: missing pdfFile", ErrInvalidUnit)
	}

	sourceType := classify.DetectSourceType(unit.RelativePath)
	title := TitleFromFilename(unit.PDFFile)
	cleaned := normalize.Clean(unit.Content)

	var chapter *string
	if sourceType != core.SourceAnnale {
		if tag, ok := classify.FindChapter(title, cleaned); ok {
			chapter = &tag
		}
	}

	yz := classify.ParseYearZone(title + " " + unit.RelativePath + " " + classify.Head(cleaned, classify.ScanLimit))
	meta := core.DocumentMetadata{
		Source:        core.MetadataSource,
		PDFFile:       unit.PDFFile,
		Year:          yz.Year,
		Zone:          yz.Zone,
		HasCorrection: classify.HasCorrection(cleaned),
	}

	parts := chunk.ForSourceType(sourceType).Chunk(cleaned)
	docs := make([]core.StructuredDocument, 0, len(parts))
	for i, part := range parts {
		partTitle := title
		if len(parts) > 1 {
			partTitle = fmt.Sprintf("%s - part %d", title, i+1)
		}
		docs = append(docs, core.StructuredDocument{
			SourceType: sourceType,
			Subject:    core.Subject,
			Grade:      core.Grade,
			Chapter:    chapter,
			Title:      partTitle,
			Content:    part,
			Metadata:   meta,
		})
	}
	return docs, nil
}

// TitleFromFilename turns "sujet_bepc_2019.pdf" into "sujet bepc 2019".
func TitleFromFilename(pdfFile string) string {
	name := path.Base(strings.ReplaceAll(pdfFile, "\\", "/"))
	stem := strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
}

// OutputName returns the file name of the index-th document of a unit:
// the chapter tag when known, otherwise a slug of the title. Only livre
// parts after the first get a "_part_N" suffix.
func OutputName(sourceType core.SourceType, chapter *string, title string, index int) string {
	base := output.Slugify(title)
	if chapter != nil && *chapter != "" {
		base = *chapter
	}
	if sourceType == core.SourceLivre && index > 0 {
		return fmt.Sprintf("%s_part_%d.json", base, index+1)
	}
	return base + ".json"
}

// OutputPath is OutputName placed under the source type directory.
func OutputPath(doc core.StructuredDocument, index int) string {
	return path.Join(output.SourceDirName(doc.SourceType), OutputName(doc.SourceType, doc.Chapter, doc.Title, index))
}
