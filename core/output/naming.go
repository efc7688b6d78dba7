package output

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/studyharvest/core"
)

const maxFilenameLen = 120

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

var sourceDirs = map[core.SourceType]string{
	core.SourceCours:    "cours",
	core.SourceExercice: "exercices",
	core.SourceAnnale:   "annales",
	core.SourceLivre:    "livres",
}

// SourceDirName returns the directory holding files of a source type.
// Unknown types get a plural of their own name.
func SourceDirName(sourceType core.SourceType) string {
	if dir, ok := sourceDirs[sourceType]; ok {
		return dir
	}
	return string(sourceType) + "s"
}

// Slugify replaces every run of non-alphanumeric characters with an underscore.
// Example: "Sujet BEPC 2019 (zone 2)" → "sujet_bepc_2019_zone_2"
func Slugify(value string) string {
	slug := strings.ToLower(strings.Trim(nonAlnumRe.ReplaceAllString(value, "_"), "_"))
	if slug == "" {
		return "document"
	}
	return slug
}

// InferFilename names the local copy of a downloaded PDF from its title and
// the stem of the URL path.
// Example: ("Sujet BEPC", "https://x/docs/maths-2019.pdf") → "sujet_bepc_maths_2019.pdf"
func InferFilename(title, rawURL string) string {
	base := Slugify(title)
	if stem := urlStem(rawURL); stem != "" && strings.ToLower(stem) != "file" {
		base = base + "_" + Slugify(stem)
	}
	if len(base) > maxFilenameLen {
		base = base[:maxFilenameLen]
	}
	return base + ".pdf"
}

// urlStem works on the escaped path, so "Sujet%20BEPC.pdf" yields "Sujet%20BEPC".
func urlStem(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(parsed.EscapedPath())
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
