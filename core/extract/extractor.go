// Package extract implements the TextExtractor interface for PDF files.
// Text is read page by page with ledongthuc/pdf; no OCR is attempted, so
// scanned documents come out (nearly) empty and are flagged as such.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ScannedThreshold is the minimum number of characters a text-based PDF yields.
const ScannedThreshold = 50

// ErrEmptyFile is returned for zero-length input.
var ErrEmptyFile = errors.New("empty_file")

// PDFError reports a file that could not be parsed as a PDF.
type PDFError struct {
	Message string
}

// Error implements error.
func (e *PDFError) Error() string {
	return e.Message
}

// PDFExtractor extracts plain text from PDF bytes.
type PDFExtractor struct {
	// MaxPages stops extraction after this many pages; zero means all pages.
	MaxPages int
}

// New creates a PDFExtractor reading at most maxPages pages.
// A maxPages <= 0 reads every page.
func New(maxPages int) *PDFExtractor {
	if maxPages < 0 {
		maxPages = 0
	}
	return &PDFExtractor{MaxPages: maxPages}
}

// Extract returns the text of every page joined by newlines and trimmed.
// Pages whose text cannot be decoded are skipped.
func (p *PDFExtractor) Extract(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", &PDFError{Message: fmt.Sprintf("not a valid PDF file - content starts with: %q", data[:min(20, len(data))])}
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &PDFError{Message: fmt.Sprintf("failed to parse PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &PDFError{Message: fmt.Sprintf("failed to parse PDF: %v", err)}
	}

	numPages := reader.NumPage()
	if p.MaxPages > 0 && numPages > p.MaxPages {
		numPages = p.MaxPages
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// DetectScanned reports whether text is too short to come from a text-based PDF.
func DetectScanned(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < ScannedThreshold
}
