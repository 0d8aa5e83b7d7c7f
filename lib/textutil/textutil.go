package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a header-like name and removes all whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// FindName returns the index of the first name equal to `exact` after
// normalization, falling back to the first one matching any of `matchers`.
// It returns -1 when nothing matches.
func FindName(names []string, exact string, matchers []string) int {
	exact = NormalizeName(exact)
	for i, n := range names {
		if NormalizeName(n) == exact {
			return i
		}
	}
	for i, n := range names {
		if MatchName(n, matchers) {
			return i
		}
	}
	return -1
}
