package twcfg

import (
	"errors"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

// negationPrefix marks a content pattern that removes files from the scan set.
const negationPrefix = "!"

// ValidatePattern reports whether pattern is a usable content glob.
// A leading "!" (exclusion) is allowed once and the remainder must be valid.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New("pattern is empty")
	}

	for _, r := range pattern {
		if unicode.IsControl(r) {
			return errors.New("pattern contains a control character")
		}
	}

	body, negated := splitNegation(pattern)
	if negated && strings.TrimSpace(body) == "" {
		return errors.New("exclusion has no pattern after \"!\"")
	}

	if !doublestar.ValidatePattern(body) {
		return errors.New("unbalanced brackets or braces in " + quote(body))
	}

	return nil
}

// splitNegation strips the exclusion prefix.
func splitNegation(pattern string) (string, bool) {
	if strings.HasPrefix(pattern, negationPrefix) {
		return strings.TrimPrefix(pattern, negationPrefix), true
	}
	return pattern, false
}

func quote(s string) string {
	return `"` + s + `"`
}
