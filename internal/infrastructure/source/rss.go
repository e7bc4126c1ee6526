// Package source implements the per-kind adapters that turn fetched
// documents into candidate items.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/watch"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// RSSAdapter polls RSS/Atom feeds.
type RSSAdapter struct {
	parser *gofeed.Parser
}

var _ watch.Adapter = (*RSSAdapter)(nil)

// NewRSSAdapter wires an HTTP client into a feed parser.
func NewRSSAdapter(client *http.Client) *RSSAdapter {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &RSSAdapter{parser: parser}
}

// Type identifies the adapter inside the registry.
func (a *RSSAdapter) Type() domain.SourceType {
	return domain.SourceRSS
}

// Fetch parses the feed and returns keyword-matching entries as candidates.
func (a *RSSAdapter) Fetch(ctx context.Context, src watch.Source) ([]domain.CandidateItem, error) {
	feed, err := a.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, &domain.FetchError{Source: src.Name, Err: err}
	}

	var candidates []domain.CandidateItem
	for _, entry := range feed.Items {
		rawKey := entry.GUID
		if rawKey == "" {
			rawKey = entry.Link
		}
		if rawKey == "" {
			rawKey = entry.Title
		}
		if rawKey == "" {
			continue
		}

		description := entry.Description
		if description == "" {
			description = entry.Content
		}

		if !watch.MatchesKeywords(entry.Title+" "+description, src.Keywords) {
			continue
		}

		var publishedAt time.Time
		if entry.PublishedParsed != nil {
			publishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			publishedAt = *entry.UpdatedParsed
		}

		candidates = append(candidates, domain.CandidateItem{
			SourceType:  domain.SourceRSS,
			SourceName:  src.Name,
			Title:       entry.Title,
			URL:         entry.Link,
			Snippet:     watch.Snippet(description),
			PublishedAt: publishedAt,
			RawKey:      rawKey,
		})
	}

	return candidates, nil
}
