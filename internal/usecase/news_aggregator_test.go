package usecase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinBoard/internal/feed"
	"FinBoard/internal/keystore"
	"FinBoard/internal/provider/newsapi"
	"FinBoard/internal/usecase"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"

	"github.com/stretchr/testify/require"
)

const fiveItemFeed = `<rss><channel>
<item><title>Profit surge at megacap</title><link>https://x.test/1</link><pubDate>Mon, 01 Jan 2024 09:00:00 GMT</pubDate><description>strong growth</description></item>
<item><title>Oil prices fall</title><link>https://x.test/2</link><pubDate>Wed, 03 Jan 2024 09:00:00 GMT</pubDate><description>supply concern</description></item>
<item><title>Quarterly report due</title><link>https://x.test/3</link><pubDate>Tue, 02 Jan 2024 09:00:00 GMT</pubDate><description>calendar note</description></item>
<item><title>Rates decision ahead</title><link>https://x.test/4</link><pubDate>Fri, 05 Jan 2024 09:00:00 GMT</pubDate><description>risk watch</description></item>
<item><title>Chip maker rally</title><link>https://x.test/5</link><pubDate>Thu, 04 Jan 2024 09:00:00 GMT</pubDate><description>gains continue</description></item>
</channel></rss>`

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newAggregator(t *testing.T, cfg *config.Config) *usecase.NewsAggregator {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	keys := keystore.New(mem, cfg)
	return usecase.NewNewsAggregator(feed.NewFetcher(cfg), newsapi.New(cfg), keys, mem, cfg, testLogger(t))
}

func TestFinancialNewsPartialFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fiveItemFeed))
	}))
	t.Cleanup(healthy.Close)

	cfg := &config.Config{}
	cfg.Feeds.Financial = []config.FeedSource{
		{Name: "Broken A", URL: broken.URL},
		{Name: "Broken B", URL: broken.URL},
		{Name: "Healthy", URL: healthy.URL},
	}
	cfg.Feeds.MaxFinancial = 50
	agg := newAggregator(t, cfg)

	digest := agg.FinancialNews(context.Background(), "")

	require.Equal(t, 1, digest.FeedsLoaded)
	require.Len(t, digest.Articles, 5)
	require.Empty(t, digest.Error)
	require.Equal(t, "rss", digest.Origin)

	// Newest first.
	require.Equal(t, "Rates decision ahead", digest.Articles[0].Title)
	require.Equal(t, "Profit surge at megacap", digest.Articles[4].Title)

	// Every article carries a sentiment tag.
	for _, a := range digest.Articles {
		require.NotEmpty(t, a.Sentiment)
	}
}

func TestFinancialNewsAllFailNoCredential(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(broken.Close)

	cfg := &config.Config{}
	cfg.Feeds.Financial = []config.FeedSource{
		{Name: "Broken A", URL: broken.URL},
		{Name: "Broken B", URL: broken.URL},
	}
	cfg.Feeds.MaxFinancial = 50
	agg := newAggregator(t, cfg)

	digest := agg.FinancialNews(context.Background(), "")

	require.NotNil(t, digest.Articles)
	require.Empty(t, digest.Articles)
	require.NotEmpty(t, digest.Error, "a wipeout must explain itself instead of failing")
}

func TestFinancialNewsFallback(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	headlines := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "business", r.URL.Query().Get("category"))
		require.Equal(t, "fallback-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`{"status":"ok","articles":[
		  {"title":"Markets rally on rate cut hopes","url":"https://n.test/1","publishedAt":"2024-01-05T10:00:00Z","description":"broad gains","source":{"name":"Wire"}}
		]}`))
	}))
	t.Cleanup(headlines.Close)

	cfg := &config.Config{}
	cfg.Feeds.Financial = []config.FeedSource{{Name: "Broken", URL: broken.URL}}
	cfg.Feeds.MaxFinancial = 50
	cfg.NewsAPI.BaseURL = headlines.URL
	cfg.NewsAPI.APIKey = "fallback-key"
	agg := newAggregator(t, cfg)

	digest := agg.FinancialNews(context.Background(), "")

	require.Equal(t, "fallback", digest.Origin)
	require.Len(t, digest.Articles, 1)
	require.Equal(t, "Wire", digest.Articles[0].Source)
	require.NotEmpty(t, digest.Articles[0].Sentiment)
}

func TestAINewsKeywordFilterAndCap(t *testing.T) {
	techFeed := `<rss><channel>
<item><title>New GPU for data center inference</title><link>https://t.test/1</link><pubDate>Mon, 01 Jan 2024 09:00:00 GMT</pubDate><description>nvidia chips</description></item>
<item><title>Smartphone review roundup</title><link>https://t.test/2</link><pubDate>Tue, 02 Jan 2024 09:00:00 GMT</pubDate><description>cameras and batteries</description></item>
<item><title>LLM benchmark results</title><link>https://t.test/3</link><pubDate>Wed, 03 Jan 2024 09:00:00 GMT</pubDate><description>model quality improves</description></item>
</channel></rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(techFeed))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Feeds.AI = []config.FeedSource{{Name: "Tech", URL: srv.URL}}
	cfg.Feeds.MaxAI = 1
	agg := newAggregator(t, cfg)

	digest := agg.AINews(context.Background(), "")

	require.Equal(t, 1, digest.FeedsLoaded)
	require.Len(t, digest.Articles, 1, "cap applies after the keyword filter")
	require.Equal(t, "LLM benchmark results", digest.Articles[0].Title, "newest AI-related article wins")
}

func TestFinancialNewsCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(fiveItemFeed))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Feeds.Financial = []config.FeedSource{{Name: "Feed", URL: srv.URL}}
	cfg.Feeds.MaxFinancial = 50
	cfg.Cache.NewsTTL = time.Minute
	agg := newAggregator(t, cfg)

	first := agg.FinancialNews(context.Background(), "")
	second := agg.FinancialNews(context.Background(), "")

	require.Equal(t, 1, hits, "second call must come from cache")
	require.Equal(t, len(first.Articles), len(second.Articles))
}
