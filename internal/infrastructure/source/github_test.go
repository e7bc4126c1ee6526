package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/watch"
)

func TestGitHubAdapterFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/langchain-ai/langchain/releases" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("unexpected accept header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": 4242,
				"name": "langchain 0.3.0",
				"tag_name": "v0.3.0",
				"html_url": "https://github.com/langchain-ai/langchain/releases/tag/v0.3.0",
				"body": "<p>Bug fixes and <b>new agents</b>.</p>",
				"published_at": "2026-08-27T18:00:00Z"
			},
			{
				"id": 4100,
				"name": "",
				"tag_name": "v0.2.9",
				"html_url": "https://github.com/langchain-ai/langchain/releases/tag/v0.2.9",
				"body": "",
				"published_at": ""
			}
		]`))
	}))
	defer server.Close()

	adapter := NewGitHubAdapter(server.Client(), server.URL)
	src := watch.Source{Name: "langchain-ai/langchain", Type: domain.SourceGitHub, Repo: "langchain-ai/langchain"}

	candidates, err := adapter.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.Title != "New release: langchain 0.3.0 (v0.3.0)" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.RawKey != "release_4242" {
		t.Fatalf("unexpected raw key: %s", first.RawKey)
	}
	if first.Snippet != "Bug fixes and new agents." {
		t.Fatalf("unexpected snippet: %q", first.Snippet)
	}
	want := time.Date(2026, time.August, 27, 18, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published date: %v", first.PublishedAt)
	}

	// Nameless release falls back to the tag.
	second := candidates[1]
	if second.Title != "New release: v0.2.9 (v0.2.9)" {
		t.Fatalf("unexpected fallback title: %s", second.Title)
	}
	if !second.PublishedAt.IsZero() {
		t.Fatalf("expected zero published date, got %v", second.PublishedAt)
	}
}

func TestGitHubAdapterHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewGitHubAdapter(server.Client(), server.URL)
	src := watch.Source{Name: "microsoft/vscode", Type: domain.SourceGitHub, Repo: "microsoft/vscode"}

	_, err := adapter.Fetch(context.Background(), src)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestGitHubAdapterMissingRepo(t *testing.T) {
	t.Parallel()

	adapter := NewGitHubAdapter(nil, "")
	_, err := adapter.Fetch(context.Background(), watch.Source{Name: "broken", Type: domain.SourceGitHub})
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError for missing repo, got %v", err)
	}
}
