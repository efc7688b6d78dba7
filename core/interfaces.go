// Package core defines the shared records and stage interfaces for studyharvest.
// Each stage of the pipeline (discover, download, extract, structure) consumes
// and produces the values declared here.
package core

import "context"

// SourceType identifies the kind of study material a document belongs to.
type SourceType string

const (
	SourceCours    SourceType = "cours"
	SourceExercice SourceType = "exercice"
	SourceAnnale   SourceType = "annale"
	SourceLivre    SourceType = "livre"
)

// Constant subject metadata carried by every structured document.
const (
	Subject        = "mathematiques"
	Grade          = "3eme"
	MetadataSource = "fomesoutra"
)

// Valid reports whether t is one of the four known source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceCours, SourceExercice, SourceAnnale, SourceLivre:
		return true
	}
	return false
}

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// LinkCandidate is a harvested PDF link handed to the download stage.
// Two candidates are the same when both URL and SourceType match.
type LinkCandidate struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	SourceType SourceType `json:"sourceType"`
}

// ExtractedUnit is the text extracted from one downloaded PDF.
type ExtractedUnit struct {
	PDFFile      string `json:"pdfFile"`
	RelativePath string `json:"relativePath"`
	IsScanned    bool   `json:"isScanned"`
	Content      string `json:"content"`
	Error        string `json:"error,omitempty"`
}

// Skipped reports whether the unit must be left out of structuring.
func (u ExtractedUnit) Skipped() bool {
	return u.IsScanned || u.Error != ""
}

// DocumentMetadata is the provenance and exam metadata of a structured document.
type DocumentMetadata struct {
	Source        string  `json:"source"`
	PDFFile       string  `json:"pdfFile"`
	Year          *int    `json:"year"`
	Zone          *string `json:"zone"`
	HasCorrection bool    `json:"hasCorrection"`
}

// StructuredDocument is one chunk of cleaned study content.
type StructuredDocument struct {
	SourceType SourceType       `json:"sourceType"`
	Subject    string           `json:"subject"`
	Grade      string           `json:"grade"`
	Chapter    *string          `json:"chapter"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Metadata   DocumentMetadata `json:"metadata"`
}

// Download statuses recorded in the download report.
const (
	StatusDownloaded      = "downloaded"
	StatusSkippedExisting = "skipped_existing"
	StatusFailed          = "failed"
)

// DownloadItem records the outcome for a single candidate.
type DownloadItem struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	SourceType SourceType `json:"sourceType"`
	File       string     `json:"file"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason"`
}

// DownloadFailure is an entry of failed_urls.json.
type DownloadFailure struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	SourceType SourceType `json:"sourceType"`
	Reason     string     `json:"reason"`
}

// DownloadSummary aggregates a download run.
type DownloadSummary struct {
	TotalURLs              int                `json:"totalUrls"`
	Downloaded             int                `json:"downloaded"`
	SkippedExisting        int                `json:"skippedExisting"`
	Failed                 int                `json:"failed"`
	DownloadedBySourceType map[SourceType]int `json:"downloadedBySourceType"`
}

// DownloadReport is the full download_report.json payload.
type DownloadReport struct {
	Summary DownloadSummary `json:"summary"`
	Items   []DownloadItem  `json:"items"`
}

// Failures returns the failed items of the report.
func (r *DownloadReport) Failures() []DownloadFailure {
	failures := make([]DownloadFailure, 0, r.Summary.Failed)
	for _, item := range r.Items {
		if item.Status != StatusFailed {
			continue
		}
		failures = append(failures, DownloadFailure{
			URL:        item.URL,
			Title:      item.Title,
			SourceType: item.SourceType,
			Reason:     item.Reason,
		})
	}
	return failures
}

// Fetcher retrieves decoded HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// TextExtractor pulls plain text out of raw PDF bytes.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}
