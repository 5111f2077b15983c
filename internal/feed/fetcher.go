package feed

import (
	"context"
	"fmt"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/provider"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
)

// Fetcher downloads and parses one RSS/Atom feed per call. Feeds bot-block
// the default Go agent, so the spoofed browser User-Agent from the Yahoo
// section is reused here.
type Fetcher struct {
	http *xhttp.Client
}

// NewFetcher creates a feed fetcher.
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Feeds.Timeout),
			xhttp.WithUserAgent(cfg.Yahoo.UserAgent),
			xhttp.WithHeader("Accept", "application/rss+xml, application/xml, text/xml, */*"),
		),
	}
}

// Fetch downloads src and returns its parsed articles. A reachable feed that
// parses to zero articles is returned as an empty slice, not an error.
func (f *Fetcher) Fetch(ctx context.Context, src config.FeedSource) ([]models.ArticleRecord, error) {
	var body string
	if err := f.http.GetJSON(ctx, src.URL, nil, &body); err != nil {
		return nil, fmt.Errorf("%w: feed %s: %v", provider.ErrUpstreamUnavailable, src.Name, err)
	}
	return Parse(body, src.Name), nil
}
