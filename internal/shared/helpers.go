// Package shared provides common utility functions used across multiple
// packages in the rentaldesk codebase.
package shared

import (
	"strings"
	"unicode"
)

// NormalizeImageCandidate lowercases a car field and replaces every
// whitespace rune with an underscore so it can be compared against asset
// filenames, e.g. "Tata Sumo" becomes "tata_sumo". Surrounding whitespace
// is dropped, so a blank value normalizes to "".
func NormalizeImageCandidate(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, lower)
}

// NormalizeImageCandidates normalizes each value and drops the ones that
// end up empty or repeat an earlier candidate. Input order is kept.
func NormalizeImageCandidates(values ...string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, value := range values {
		candidate := NormalizeImageCandidate(value)
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// CandidateTokens splits a normalized candidate into its underscore
// separated words, skipping empty ones.
func CandidateTokens(candidate string) []string {
	var tokens []string
	for _, part := range strings.Split(candidate, "_") {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// NormalizeRegistration trims and uppercases a registration number.
func NormalizeRegistration(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
