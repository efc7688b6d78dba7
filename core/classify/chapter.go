// Package classify infers curriculum metadata from document text: the
// chapter a document covers, its source type, exam year and zone.
package classify

import (
	"strings"

	"github.com/gaurav-prasanna/studyharvest/core"
)

// ScanLimit is how many leading characters of content are searched.
const ScanLimit = 2000

type chapterRule struct {
	keyword string
	chapter string
}

// chapterRules is ordered; the first keyword found wins.
var chapterRules = []chapterRule{
	{"pythagore", "pythagore"},
	{"thales", "thales"},
	{"trigonometrie", "trigonometrie"},
	{"calcul litteral", "calcul_litteral"},
	{"equation", "equations_inequations"},
	{"inequation", "equations_inequations"},
	{"fonction lineaire", "fonctions_lineaires_affines"},
	{"fonction affine", "fonctions_lineaires_affines"},
	{"application affine", "applications_affines"},
	{"puissance", "puissances_racines_carrees"},
	{"racine carree", "puissances_racines_carrees"},
	{"nombres entiers", "nombres_entiers_rationnels"},
	{"rationnels", "nombres_entiers_rationnels"},
	{"statistique", "statistiques_probabilites"},
	{"probabilite", "statistiques_probabilites"},
	{"angles inscrits", "angles_inscrits_polygones"},
	{"polygone", "angles_inscrits_polygones"},
	{"section de solides", "sections_solides"},
	{"pyramide", "pyramides_cones"},
	{"cone", "pyramides_cones"},
	{"sphere", "spheres_boules"},
	{"boule", "spheres_boules"},
	{"grandeurs composees", "grandeurs_composees"},
}

// FindChapter returns the chapter tag of the first rule whose keyword occurs
// in the title or the first ScanLimit characters of content.
func FindChapter(title, content string) (string, bool) {
	haystack := strings.ToLower(title + " " + Head(content, ScanLimit))
	for _, rule := range chapterRules {
		if strings.Contains(haystack, rule.keyword) {
			return rule.chapter, true
		}
	}
	return "", false
}

// DetectSourceType guesses the source type from a file path.
func DetectSourceType(pathName string) core.SourceType {
	lowered := strings.ToLower(pathName)
	switch {
	case strings.Contains(lowered, "annale") || strings.Contains(lowered, "bepc"):
		return core.SourceAnnale
	case strings.Contains(lowered, "exercice"):
		return core.SourceExercice
	case strings.Contains(lowered, "livre") || strings.Contains(lowered, "namo") || strings.Contains(lowered, "fascicule"):
		return core.SourceLivre
	default:
		return core.SourceCours
	}
}

// Head returns the first n characters (runes) of s.
func Head(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
