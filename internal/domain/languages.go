package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ParseLanguages flattens comma separated language arguments into an
// ordered, duplicate-free list. Each code must be a well-formed BCP 47
// tag; the code itself is kept verbatim because track matching is exact.
func ParseLanguages(raw []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range raw {
		for _, code := range strings.Split(arg, ",") {
			code = strings.TrimSpace(code)
			if code == "" || seen[code] {
				continue
			}
			if _, err := language.Parse(code); err != nil {
				return nil, E(KindInvalidInput, "parse languages", fmt.Errorf("invalid language code %q: %w", code, err))
			}
			seen[code] = true
			out = append(out, code)
		}
	}
	return out, nil
}

// ContainsLanguage reports whether code is one of langs, compared exactly
func ContainsLanguage(langs []string, code string) bool {
	for _, l := range langs {
		if l == code {
			return true
		}
	}
	return false
}
