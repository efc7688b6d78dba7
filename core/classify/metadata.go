package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRe = regexp.MustCompile(`(20\d{2}|19\d{2})`)
	zoneRe = regexp.MustCompile(`(?:zone|zn)[\s\p{Zs}]*([123])`)
	// A digit not touching any letter, digit or underscore, accented ones included.
	loneZoneDigitRe = regexp.MustCompile(`(?:^|[^\p{L}\p{N}\p{M}_])([123])(?:[^\p{L}\p{N}\p{M}_]|$)`)
)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// YearZone holds the exam year and zone found in a text, if any.
type YearZone struct {
	Year *int
	Zone *string
}

// ParseYearZone extracts the exam year and zone from file names and text.
//
// When "zone" appears without a digit right after it, the first standalone
// 1, 2 or 3 anywhere in the text is taken as the zone, which may be an
// unrelated number such as an exercise index.
func ParseYearZone(text string) YearZone {
	normalized := separatorReplacer.Replace(strings.ToLower(text))

	var yz YearZone
	if m := yearRe.FindStringSubmatch(normalized); m != nil {
		year, _ := strconv.Atoi(m[1])
		yz.Year = &year
	}

	m := zoneRe.FindStringSubmatch(normalized)
	if m == nil && strings.Contains(normalized, "zone") {
		m = loneZoneDigitRe.FindStringSubmatch(normalized)
	}
	if m != nil {
		zone := m[1]
		yz.Zone = &zone
	}
	return yz
}

// HasCorrection reports whether the content includes worked answers.
func HasCorrection(content string) bool {
	lowered := strings.ToLower(content)
	return strings.Contains(lowered, "corrige") || strings.Contains(lowered, "correction")
}
