package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/watch"
)

const (
	githubAPIBase = "https://api.github.com"
	// Only the newest releases matter; older ones are already in the store.
	releaseWindow = 5
)

// GitHubAdapter tracks repository releases via the GitHub REST API.
type GitHubAdapter struct {
	client  *http.Client
	apiBase string
}

var _ watch.Adapter = (*GitHubAdapter)(nil)

// NewGitHubAdapter wires an HTTP client; apiBase overrides the GitHub API
// endpoint for testing, empty string uses production.
func NewGitHubAdapter(client *http.Client, apiBase string) *GitHubAdapter {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if apiBase == "" {
		apiBase = githubAPIBase
	}
	return &GitHubAdapter{client: client, apiBase: apiBase}
}

// Type identifies the adapter inside the registry.
func (a *GitHubAdapter) Type() domain.SourceType {
	return domain.SourceGitHub
}

type githubRelease struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TagName     string `json:"tag_name"`
	HTMLURL     string `json:"html_url"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
}

// Fetch lists the repository's latest releases as candidates.
func (a *GitHubAdapter) Fetch(ctx context.Context, src watch.Source) ([]domain.CandidateItem, error) {
	if src.Repo == "" {
		return nil, &domain.FetchError{Source: src.Name, Err: fmt.Errorf("github source has no repo configured")}
	}

	url := fmt.Sprintf("%s/repos/%s/releases?per_page=%d", a.apiBase, src.Repo, releaseWindow)
	body, err := a.fetchAPI(ctx, url)
	if err != nil {
		return nil, &domain.FetchError{Source: src.Name, Err: err}
	}

	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, &domain.FetchError{Source: src.Name, Err: fmt.Errorf("parse releases: %w", err)}
	}

	var candidates []domain.CandidateItem
	for _, release := range releases {
		name := release.Name
		if name == "" {
			name = release.TagName
		}

		var publishedAt time.Time
		if release.PublishedAt != "" {
			if parsed, err := time.Parse(time.RFC3339, release.PublishedAt); err == nil {
				publishedAt = parsed
			}
		}

		candidates = append(candidates, domain.CandidateItem{
			SourceType:  domain.SourceGitHub,
			SourceName:  src.Name,
			Title:       fmt.Sprintf("New release: %s (%s)", name, release.TagName),
			URL:         release.HTMLURL,
			Snippet:     watch.Snippet(release.Body),
			PublishedAt: publishedAt,
			RawKey:      fmt.Sprintf("release_%d", release.ID),
		})
	}

	return candidates, nil
}

func (a *GitHubAdapter) fetchAPI(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", userAgent)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("github returned %s: %s", resp.Status, detail)
	}

	return io.ReadAll(resp.Body)
}
