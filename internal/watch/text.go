package watch

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const snippetLimit = 500

// MatchesKeywords reports whether text contains any configured keyword,
// case-insensitively. An empty keyword list matches everything.
func MatchesKeywords(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Snippet strips HTML markup, collapses whitespace and truncates the result
// for storage and display.
func Snippet(content string) string {
	if content == "" {
		return ""
	}

	text := content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		text = doc.Text()
	}

	text = strings.Join(strings.Fields(text), " ")
	if len(text) > snippetLimit {
		// Back off to a rune start so the cut never splits a multibyte
		// character.
		cut := snippetLimit - 3
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
