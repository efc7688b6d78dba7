// Package crawl provides PDF link discovery for the discover stage.
// It scans seed pages for PDF links, follows annale landing pages exactly one
// level deep, and merges everything into the candidate list for download.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/rs/zerolog"
)

// Seed is a configured start page and the source type of its documents.
type Seed struct {
	SourceType core.SourceType
	URL        string
}

// Harvester collects LinkCandidates from seed pages.
type Harvester struct {
	fetcher core.Fetcher
	log     zerolog.Logger
}

// NewHarvester creates a Harvester that fetches pages with fetcher.
func NewHarvester(fetcher core.Fetcher, logger zerolog.Logger) *Harvester {
	return &Harvester{fetcher: fetcher, log: logger}
}

// Harvest scrapes every seed in order and returns the deduplicated, sorted
// candidate list. A seed that cannot be fetched or parsed contributes nothing.
func (h *Harvester) Harvest(ctx context.Context, seeds []Seed) ([]core.LinkCandidate, error) {
	var all []core.LinkCandidate
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.log.Info().Str("source_type", string(seed.SourceType)).Str("url", seed.URL).Msg("scraping")

		result, err := h.fetcher.Fetch(ctx, seed.URL)
		if err != nil {
			h.log.Warn().Err(err).Str("url", seed.URL).Msg("scrape failed")
			continue
		}
		links, err := h.CollectLinks(ctx, result.HTML, seed.URL, seed.SourceType)
		if err != nil {
			h.log.Warn().Err(err).Str("url", seed.URL).Msg("scrape failed")
			continue
		}
		h.log.Info().Int("links", len(links)).Str("url", seed.URL).Msg("found links")
		all = append(all, links...)
	}
	return Dedupe(all), nil
}

// CollectLinks scans one page. PDF links are emitted in page order; annale
// landing pages are then fetched once each and their PDF links appended.
// Within a page, links are deduplicated by absolute URL only.
func (h *Harvester) CollectLinks(ctx context.Context, pageHTML, pageURL string, sourceType core.SourceType) ([]core.LinkCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	seen := make(map[string]bool)
	landing := NewQueue()
	var results []core.LinkCandidate

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		absoluteURL := resolveURL(anchor.AttrOr("href", ""), base)
		if absoluteURL == "" {
			return
		}
		title := DeriveLinkTitle(anchor, absoluteURL)
		if !PassesStrictFilters(sourceType, title, absoluteURL) {
			return
		}

		if IsPDFCandidate(absoluteURL) {
			if seen[absoluteURL] {
				return
			}
			seen[absoluteURL] = true
			results = append(results, core.LinkCandidate{URL: absoluteURL, Title: title, SourceType: sourceType})
			return
		}

		if ShouldCrawlDocPage(absoluteURL, sourceType) && landing.Add(absoluteURL) {
			h.log.Debug().Str("url", absoluteURL).Msg("queued landing page")
		}
	})

	if landing.Len() > 0 {
		h.log.Debug().Int("landing_pages", landing.Len()).Str("url", pageURL).Msg("expanding landing pages")
	}

	// Second phase: depth 1 only, landing pages are never queued from here.
	for landing.HasNext() {
		results = append(results, h.expandLandingPage(ctx, landing.Next(), sourceType, seen)...)
	}
	return results, nil
}

// expandLandingPage returns the unseen PDF links of a landing page. Fetch
// or parse failures yield no links.
func (h *Harvester) expandLandingPage(ctx context.Context, pageURL string, sourceType core.SourceType, seen map[string]bool) []core.LinkCandidate {
	result, err := h.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		h.log.Debug().Err(err).Str("url", pageURL).Msg("landing page skipped")
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		h.log.Debug().Err(err).Str("url", pageURL).Msg("landing page skipped")
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	pageTitle := NormalizeTitle(textOf(doc.Find("title").First()), pageURL)

	var results []core.LinkCandidate
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		docURL := resolveURL(anchor.AttrOr("href", ""), base)
		if docURL == "" || !IsPDFCandidate(docURL) || seen[docURL] {
			return
		}
		title := DeriveLinkTitle(anchor, docURL)
		if LooksLikeDownloadLabel(title) {
			title = pageTitle
		}
		if !PassesStrictFilters(sourceType, title, docURL) {
			return
		}
		seen[docURL] = true
		results = append(results, core.LinkCandidate{URL: docURL, Title: title, SourceType: sourceType})
	})
	return results
}

// Dedupe merges candidates sharing (URL, SourceType): the last payload wins
// but keeps the position of the first occurrence. The result is sorted by
// source type, then case-insensitive title.
func Dedupe(links []core.LinkCandidate) []core.LinkCandidate {
	type key struct {
		url        string
		sourceType core.SourceType
	}
	index := make(map[key]int, len(links))
	out := make([]core.LinkCandidate, 0, len(links))
	for _, link := range links {
		k := key{link.URL, link.SourceType}
		if i, ok := index[k]; ok {
			out[i] = link
			continue
		}
		index[k] = len(out)
		out = append(out, link)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SourceType != out[j].SourceType {
			return out[i].SourceType < out[j].SourceType
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}

// resolveURL resolves href against the page URL. Fragments are kept, and an
// empty or "#" href resolves to the page itself; the filter rules decide what
// is emitted.
func resolveURL(href string, base *url.URL) string {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
