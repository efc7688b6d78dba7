// Package normalize cleans raw PDF text before it is classified and chunked.
// Running headers and footers are dropped first, then every surviving line
// becomes its own paragraph.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// RepeatThreshold is the number of occurrences from which a line counts as boilerplate.
	RepeatThreshold = 8
	// MaxBoilerplateLen is the longest line (in characters) treated as boilerplate.
	MaxBoilerplateLen = 120
)

var horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)

// Clean strips repeated lines and then normalizes whitespace. Stripping must
// come first so boilerplate is detected on unmodified line boundaries.
func Clean(text string) string {
	return Normalize(StripRepeatedLines(text))
}

// Normalize collapses horizontal whitespace, drops blank lines and joins the
// remaining lines with a blank line between each.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	return strings.Join(nonEmptyLines(text), "\n\n")
}

// StripRepeatedLines removes every occurrence of short lines that appear at
// least RepeatThreshold times, such as page headers and footers.
func StripRepeatedLines(text string) string {
	lines := nonEmptyLines(text)
	freq := make(map[string]int, len(lines))
	for _, line := range lines {
		freq[line]++
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if freq[line] >= RepeatThreshold && utf8.RuneCountInString(line) <= MaxBoilerplateLen {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
