package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/watch"
)

// Only the freshest headlines matter per cycle; the rest were seen before.
const newsArticleWindow = 10

// NewsAdapter scrapes a news listing page with a configured CSS selector.
type NewsAdapter struct {
	client *http.Client
}

var _ watch.Adapter = (*NewsAdapter)(nil)

// NewNewsAdapter wires an HTTP client.
func NewNewsAdapter(client *http.Client) *NewsAdapter {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &NewsAdapter{client: client}
}

// Type identifies the adapter inside the registry.
func (a *NewsAdapter) Type() domain.SourceType {
	return domain.SourceNews
}

// Fetch extracts headline links matching the source selector. A selector
// matching nothing is reported as a fetch failure so operators can detect
// site redesigns instead of a silent empty cycle.
func (a *NewsAdapter) Fetch(ctx context.Context, src watch.Source) ([]domain.CandidateItem, error) {
	doc, err := fetchDocument(ctx, a.client, src.URL)
	if err != nil {
		return nil, &domain.FetchError{Source: src.Name, Err: err}
	}

	selection := doc.Find(src.Selector)
	if selection.Length() == 0 {
		return nil, &domain.FetchError{
			Source: src.Name,
			Err:    fmt.Errorf("selector %q matched nothing, page layout may have changed", src.Selector),
		}
	}

	var candidates []domain.CandidateItem
	selection.EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= newsArticleWindow {
			return false
		}

		title, href := headlineLink(el)
		if title == "" || href == "" {
			return true
		}

		if !watch.MatchesKeywords(title, src.Keywords) {
			return true
		}

		link := absoluteURL(src.URL, href)
		candidates = append(candidates, domain.CandidateItem{
			SourceType: domain.SourceNews,
			SourceName: src.Name,
			Title:      title,
			URL:        link,
			RawKey:     link,
		})
		return true
	})

	return candidates, nil
}

// headlineLink extracts the text and href from a matched element, which may
// be the anchor itself or a container wrapping one.
func headlineLink(el *goquery.Selection) (string, string) {
	title := strings.TrimSpace(el.Text())

	if goquery.NodeName(el) == "a" {
		href, _ := el.Attr("href")
		return title, href
	}

	anchor := el.Find("a").First()
	if anchor.Length() == 0 {
		return "", ""
	}
	href, _ := anchor.Attr("href")
	return title, href
}
