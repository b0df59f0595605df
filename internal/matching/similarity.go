package matching

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Scorer rates the likeness of two names on a fixed scale of 0 to 1.
//
// The scale is 0 to 1 everywhere in this package. Scorers working on
// other scales (e.g. 0 to 100) must normalize at this boundary.
type Scorer interface {
	Score(a, b string) float64
}

// LevenshteinScorer scores names by their Levenshtein distance relative
// to the length of the longer name.
type LevenshteinScorer struct{}

func (LevenshteinScorer) Score(a, b string) float64 {
	a = Canonical(a)
	b = Canonical(b)

	// Equality wins, two empty names included.
	if a == b {
		return 1
	}

	if a == "" || b == "" {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}

	return 1 - float64(distance)/float64(longest)
}

var caseFolder = cases.Fold()

// Canonical normalizes a merchant or vendor name for comparison:
// unicode NFKC normalization, case folding and whitespace collapsing.
func Canonical(s string) string {
	s = caseFolder.String(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ")
}
