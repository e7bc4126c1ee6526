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

const siteElementWindow = 5

// SiteAdapter checks a site directly for update sections. Unlike the news
// adapter it keys items on their text, since update blurbs often carry no
// distinct link.
type SiteAdapter struct {
	client *http.Client
}

var _ watch.Adapter = (*SiteAdapter)(nil)

// NewSiteAdapter wires an HTTP client.
func NewSiteAdapter(client *http.Client) *SiteAdapter {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &SiteAdapter{client: client}
}

// Type identifies the adapter inside the registry.
func (a *SiteAdapter) Type() domain.SourceType {
	return domain.SourceDirect
}

// Fetch extracts update elements matching the source selector. As with news
// sources, a selector matching nothing is a fetch failure.
func (a *SiteAdapter) Fetch(ctx context.Context, src watch.Source) ([]domain.CandidateItem, error) {
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
		if i >= siteElementWindow {
			return false
		}

		title := strings.Join(strings.Fields(el.Text()), " ")
		if title == "" {
			return true
		}

		if !watch.MatchesKeywords(title, src.Keywords) {
			return true
		}

		candidates = append(candidates, domain.CandidateItem{
			SourceType: domain.SourceDirect,
			SourceName: src.Name,
			Title:      title,
			URL:        src.URL,
			RawKey:     title,
		})
		return true
	})

	return candidates, nil
}
