package models

// Sentiment classification for an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ArticleRecord is one normalized feed entry. PublishedAt keeps the
// provider-native timestamp string and is parsed lazily when sorting.
type ArticleRecord struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	Sentiment   Sentiment `json:"sentiment,omitempty"`
}

// NewsDigest is an aggregation response. A digest with zero articles and a
// non-empty Error is a soft failure, not an HTTP error.
type NewsDigest struct {
	Articles    []ArticleRecord `json:"articles"`
	FeedsLoaded int             `json:"feedsLoaded"`
	Origin      string          `json:"origin,omitempty"`
	Error       string          `json:"error,omitempty"`
}
