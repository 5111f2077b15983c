package newsapi

import (
	"context"
	"fmt"
	"strconv"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/provider"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
)

// Client adapts the News API top-headlines endpoint. It is only called as
// the fallback when every RSS feed fails.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a News API adapter with the default credential.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.NewsAPI.BaseURL,
		apiKey:  cfg.NewsAPI.APIKey,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.NewsAPI.Timeout),
			xhttp.WithHeader("Accept", "application/json"),
		),
	}
}

var _ domsvc.HeadlineSource = (*Client)(nil)

func (c *Client) Name() string { return "newsapi" }

type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// FetchHeadlines returns business headlines. apiKey overrides the configured
// default when non-empty; with neither present the call is skipped.
func (c *Client) FetchHeadlines(ctx context.Context, apiKey string, limit int) ([]models.ArticleRecord, error) {
	key := apiKey
	if key == "" {
		key = c.apiKey
	}
	if key == "" {
		return nil, fmt.Errorf("%w: newsapi", provider.ErrMissingCredential)
	}

	var resp headlinesResponse
	err := c.http.GetJSON(ctx, c.baseURL+"/top-headlines", map[string]string{
		"category": "business",
		"language": "en",
		"pageSize": strconv.Itoa(limit),
		"apiKey":   key,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: newsapi top-headlines: %v", provider.ErrUpstreamUnavailable, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("%w: newsapi top-headlines: status %q", provider.ErrMalformedPayload, resp.Status)
	}

	articles := make([]models.ArticleRecord, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "News API"
		}
		articles = append(articles, models.ArticleRecord{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Summary:     a.Description,
			Source:      source,
		})
	}
	return articles, nil
}
