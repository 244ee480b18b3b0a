// Package slug converts display names into URL path segments and checks
// candidate segments against the slug grammar shared by agencies and trips.
//
// Both functions are pure. Uniqueness is a storage concern and lives in the
// service layer (see service.SlugGenerator).
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug Make produces and IsValid accepts.
const MaxLength = 120

var (
	// nonAlphanumeric matches every run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

	// grammar is the full slug grammar: lowercase alphanumerics separated by
	// single hyphens, no leading or trailing hyphen.
	grammar = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make converts free text into a slug.
//
//  1. Lowercases the input.
//  2. Decomposes to NFD and drops combining marks ("ã" → "a").
//  3. Replaces every run of non [a-z0-9] characters with one hyphen.
//  4. Trims leading and trailing hyphens.
//  5. Cuts the result to MaxLength, on a hyphen boundary when one exists.
//
// Input with nothing transliterable ("", "!!!", "東京") yields "". Callers
// must treat that as a failure and pick a fallback.
//
//	Make("Praia do Forte!!") // "praia-do-forte"
//	Make("São Paulo – Centro") // "sao-paulo-centro"
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		result = strings.ToLower(s)
	}

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return truncate(result)
}

// IsValid reports whether candidate matches the slug grammar and is no longer
// than MaxLength. It does not check uniqueness.
func IsValid(candidate string) bool {
	if candidate == "" || len(candidate) > MaxLength {
		return false
	}
	return grammar.MatchString(candidate)
}

// truncate shortens s to MaxLength, preferring to cut at the last hyphen so
// words are not split.
func truncate(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	s = s[:MaxLength]
	if idx := strings.LastIndex(s, "-"); idx > 0 {
		s = s[:idx]
	}
	return strings.Trim(s, "-")
}
