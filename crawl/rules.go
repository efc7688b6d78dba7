// Package crawl — link filtering rules.
// Decides which hyperlinks look like math PDFs for the target grade and
// derives a display title for each of them.
package crawl

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/studyharvest/core"
	"golang.org/x/net/html"
)

// pdfMarkers are URL fragments that point at a PDF or a download endpoint.
var pdfMarkers = []string{".pdf", "/file", "download", "/edocman/", "task=document.download"}

var subjectKeywords = []string{
	"math", "mathem", "pythagore", "thales", "trigono", "equation",
	"bepc", "namo", "zone", "annale", "sujet",
}

// otherSubjectKeywords reject links belonging to other school subjects.
var otherSubjectKeywords = []string{
	"physique", "chimie", "svt", "francais", "philosophie",
	"histoire", "geographie", "anglais", "espagnol", "allemand",
}

var gradeMarkers = []string{"3eme", "troisieme", "3e", "bepc", "zone"}

// downloadLabelTokens mark anchor texts that say nothing about the document.
var downloadLabelTokens = []string{"telecharger", "download", "file", "pdf", "voir", "ouvrir"}

var landingPageMarkers = []string{"bepc", "mathem", "math", "zone", "sujet", "edocman"}

// whitespaceRe also matches Unicode spaces such as U+00A0.
var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// IsPDFCandidate checks if a URL looks like a PDF or a file download.
func IsPDFCandidate(rawURL string) bool {
	return containsAny(strings.ToLower(rawURL), pdfMarkers)
}

// IsSubjectMatch checks that the link is about maths and not about another subject.
func IsSubjectMatch(title, rawURL string) bool {
	haystack := haystackOf(title, rawURL)
	return containsAny(haystack, subjectKeywords) && !containsAny(haystack, otherSubjectKeywords)
}

// IsGradeLevelMatch checks for a 3eme / BEPC marker.
func IsGradeLevelMatch(title, rawURL string) bool {
	return containsAny(haystackOf(title, rawURL), gradeMarkers)
}

// PassesStrictFilters applies the subject and grade gates to every source
// type except cours, which is always accepted.
func PassesStrictFilters(sourceType core.SourceType, title, rawURL string) bool {
	if !requiresStrictFilters(sourceType) {
		return true
	}
	if !IsSubjectMatch(title, rawURL) || !IsGradeLevelMatch(title, rawURL) {
		return false
	}
	if sourceType == core.SourceAnnale {
		haystack := haystackOf(title, rawURL)
		if !strings.Contains(haystack, "bepc") && !strings.Contains(haystack, "zone") {
			return false
		}
	}
	return true
}

// ShouldCrawlDocPage reports whether a non-PDF link is a landing page worth
// scanning one level deeper. Only annale sources have landing pages.
func ShouldCrawlDocPage(rawURL string, sourceType core.SourceType) bool {
	if sourceType != core.SourceAnnale {
		return false
	}
	lowered := strings.ToLower(rawURL)
	return containsAny(lowered, landingPageMarkers) && !strings.Contains(lowered, "download")
}

// LooksLikeDownloadLabel checks if a title is empty or a generic
// "download this" label.
func LooksLikeDownloadLabel(text string) bool {
	return text == "" || containsAny(strings.ToLower(text), downloadLabelTokens)
}

// NormalizeTitle collapses whitespace. An empty result falls back to the
// last path segment of the URL, then to "document".
func NormalizeTitle(text, rawURL string) string {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if cleaned != "" {
		return cleaned
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		if slug := path.Base(parsed.Path); slug != "." && slug != "/" {
			return slug
		}
	}
	return "document"
}

// DeriveLinkTitle picks the best title for an anchor: its own text, or the
// first heading of the enclosing card when the anchor only says "download".
func DeriveLinkTitle(anchor *goquery.Selection, absoluteURL string) string {
	direct := NormalizeTitle(textOf(anchor), absoluteURL)
	if !LooksLikeDownloadLabel(direct) {
		return direct
	}

	card := anchor.Closest("article, div, li")
	if card.Length() == 0 {
		return direct
	}
	heading := card.Find("h1, h2, h3, h4, strong").First()
	if heading.Length() == 0 {
		return direct
	}
	if title := NormalizeTitle(textOf(heading), absoluteURL); !LooksLikeDownloadLabel(title) {
		return title
	}
	return direct
}

// textOf joins the trimmed text nodes under s with single spaces, so that
// "<b>Sujet</b><i>2019</i>" reads "Sujet 2019".
func textOf(s *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func requiresStrictFilters(sourceType core.SourceType) bool {
	switch sourceType {
	case core.SourceLivre, core.SourceAnnale, core.SourceExercice:
		return true
	}
	return false
}

func haystackOf(title, rawURL string) string {
	return strings.ToLower(title + " " + rawURL)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
