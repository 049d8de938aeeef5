// Package slug derives URL-safe post identifiers from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

// RE2 \s is ASCII only. Whitespace here also covers \v, the Unicode
// separators and the BOM, the same set a browser's \s matches.
var (
	disallowed = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}-]`)
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// Derive lowercases and trims title, drops everything that is not an ASCII
// word character, whitespace or hyphen, and joins the remaining words with
// single hyphens. Non-breaking and other Unicode spaces separate words too.
// The result never starts or ends with a hyphen.
func Derive(title string) string {
	s := strings.TrimFunc(strings.ToLower(title), isSpace)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
