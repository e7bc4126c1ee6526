package watch

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMatchesKeywords(t *testing.T) {
	t.Parallel()

	if !MatchesKeywords("Anthropic ships Claude update", []string{"claude"}) {
		t.Fatal("expected case-insensitive keyword match")
	}
	if MatchesKeywords("Quarterly earnings report", []string{"claude", "gpt"}) {
		t.Fatal("expected no match")
	}
	if !MatchesKeywords("anything at all", nil) {
		t.Fatal("empty keyword list must match everything")
	}
}

func TestSnippetStripsMarkup(t *testing.T) {
	t.Parallel()

	got := Snippet("<p>New   release:\n<b>v1.2</b> is out</p>")
	if got != "New release: v1.2 is out" {
		t.Fatalf("unexpected snippet: %q", got)
	}
}

func TestSnippetTruncates(t *testing.T) {
	t.Parallel()

	got := Snippet(strings.Repeat("a", 600))
	if len(got) != 500 {
		t.Fatalf("expected 500 chars, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// 400 two-byte runes; a naive byte cut at 497 would land mid-rune.
	got := Snippet(strings.Repeat("é", 400))
	if !utf8.ValidString(got) {
		t.Fatalf("truncated snippet is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 500 {
		t.Fatalf("snippet exceeds limit: %d bytes", len(got))
	}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Resolve("rss"); err == nil {
		t.Fatal("expected error for empty registry")
	}
}
