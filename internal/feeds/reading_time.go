package feeds

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode"

	readability "github.com/go-shiori/go-readability"
)

// wpmTechnical is the average words-per-minute reading speed for technical
// content, based on research suggesting ~238 WPM for technical material.
const wpmTechnical = 238

// placeholderURL resolves relative links while readability walks a fragment
// that has no page of its own.
var placeholderURL = &url.URL{Scheme: "https", Host: "postdesk.local", Path: "/"}

// EstimateReadTime returns a "N min read" label for post content, which may
// be plain text, Markdown or HTML. Empty content yields "".
func EstimateReadTime(content string) string {
	minutes := CalculateReadingTime(PlainText(content))
	if minutes == 0 {
		return ""
	}
	return fmt.Sprintf("%d min read", minutes)
}

// PlainText reduces HTML content to its readable text. Readability is tried
// first; fragments it cannot make sense of fall back to tag stripping.
func PlainText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if !strings.ContainsRune(content, '<') {
		return content
	}

	article, err := readability.FromReader(strings.NewReader(content), placeholderURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}
	return stripHTML(content)
}

// CalculateReadingTime estimates reading time in minutes for the given text.
// Uses 238 WPM for technical content. Returns a minimum of 1 minute.
// Returns 0 for empty text.
func CalculateReadingTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}

	minutes := math.Ceil(float64(words) / wpmTechnical)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts whitespace-delimited words in the text.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
