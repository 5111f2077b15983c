package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/feed"
	"FinBoard/internal/keystore"
	"FinBoard/internal/sentiment"
	"FinBoard/internal/service/metrics"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"
)

// aiKeywords gate articles into the AI digest. Matching is case-insensitive
// substring containment over title plus summary.
var aiKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "llm", "gpt",
	"nvidia", "chip", "semiconductor", "deep learning", "neural",
	"openai", "anthropic", "gemini", "model", "inference", "gpu", "data center",
}

// NewsAggregator fans out to all configured feeds concurrently, keeps the
// partial successes, and merges them into one digest. Every source failure
// is isolated; only a full wipeout triggers the headline-provider fallback.
type NewsAggregator struct {
	fetcher  *feed.Fetcher
	fallback domsvc.HeadlineSource
	keys     *keystore.Store
	cache    cache.Service
	cfg      *config.Config
	logger   *xlogger.Logger
}

func NewNewsAggregator(fetcher *feed.Fetcher, fallback domsvc.HeadlineSource, keys *keystore.Store, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *NewsAggregator {
	return &NewsAggregator{
		fetcher:  fetcher,
		fallback: fallback,
		keys:     keys,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

type feedResult struct {
	articles []models.ArticleRecord
	err      error
}

// fetchAll settles every feed fetch and returns the per-feed results in
// feed order.
func (a *NewsAggregator) fetchAll(ctx context.Context, feeds []config.FeedSource) []feedResult {
	results := make([]feedResult, len(feeds))
	var wg sync.WaitGroup
	for i, src := range feeds {
		wg.Add(1)
		go func(i int, src config.FeedSource) {
			defer wg.Done()
			start := time.Now()
			articles, err := a.fetcher.Fetch(ctx, src)
			metrics.ObserveUpstream("feed", start, err)
			if err != nil {
				a.logger.Warn("feed fetch failed",
					xlogger.String("feed", src.Name),
					xlogger.Error(err),
				)
			}
			results[i] = feedResult{articles: articles, err: err}
		}(i, src)
	}
	wg.Wait()
	return results
}

// sortByDateDesc orders newest first. Missing or unparseable timestamps
// parse to the zero time and therefore sort as the oldest.
func sortByDateDesc(articles []models.ArticleRecord) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti := util.ParseFeedTimeDefault(articles[i].PublishedAt, time.Time{})
		tj := util.ParseFeedTimeDefault(articles[j].PublishedAt, time.Time{})
		return ti.After(tj)
	})
}

// FinancialNews aggregates the financial feed set. When every feed fails it
// falls back to the headline provider, credential permitting; with no
// credential either, the digest carries an empty list and an error string.
func (a *NewsAggregator) FinancialNews(ctx context.Context, userID string) models.NewsDigest {
	cacheKey := "news:financial"
	if userID == "" {
		var cached models.NewsDigest
		if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached
		}
	}

	results := a.fetchAll(ctx, a.cfg.Feeds.Financial)

	var all []models.ArticleRecord
	loaded := 0
	for _, r := range results {
		if r.err == nil && len(r.articles) > 0 {
			all = append(all, r.articles...)
			loaded++
		}
	}
	metrics.FeedsLoaded.WithLabelValues("financial").Observe(float64(loaded))

	if loaded == 0 {
		return a.fallbackDigest(ctx, userID)
	}

	sortByDateDesc(all)
	if len(all) > a.cfg.Feeds.MaxFinancial {
		all = all[:a.cfg.Feeds.MaxFinancial]
	}
	for i := range all {
		sentiment.Annotate(&all[i])
	}

	digest := models.NewsDigest{Articles: all, FeedsLoaded: loaded, Origin: "rss"}
	if userID == "" {
		_ = a.cache.Set(ctx, cacheKey, digest, a.cfg.Cache.NewsTTL)
	}
	return digest
}

func (a *NewsAggregator) fallbackDigest(ctx context.Context, userID string) models.NewsDigest {
	keys, err := a.keys.Resolve(ctx, userID)
	if err != nil {
		a.logger.Warn("key resolve failed", xlogger.Error(err))
	}
	if keys.NewsAPI == "" {
		return models.NewsDigest{
			Articles: []models.ArticleRecord{},
			Error:    "All RSS feeds failed and no API key provided",
		}
	}

	start := time.Now()
	articles, err := a.fallback.FetchHeadlines(ctx, keys.NewsAPI, 30)
	metrics.ObserveUpstream("newsapi", start, err)
	if err != nil {
		a.logger.Error("headline fallback failed", xlogger.Error(err))
		return models.NewsDigest{
			Articles: []models.ArticleRecord{},
			Error:    "All RSS feeds failed and fallback provider unavailable",
		}
	}

	for i := range articles {
		sentiment.Annotate(&articles[i])
	}
	return models.NewsDigest{Articles: articles, Origin: "fallback"}
}

// AINews aggregates the tech feed set and keeps only AI-related articles.
// There is no fallback provider for this digest; a wipeout returns an empty
// list with an error string.
func (a *NewsAggregator) AINews(ctx context.Context, userID string) models.NewsDigest {
	cacheKey := "news:ai"
	if userID == "" {
		var cached models.NewsDigest
		if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached
		}
	}

	results := a.fetchAll(ctx, a.cfg.Feeds.AI)

	var all []models.ArticleRecord
	loaded := 0
	for _, r := range results {
		if r.err == nil && len(r.articles) > 0 {
			all = append(all, r.articles...)
			loaded++
		}
	}
	metrics.FeedsLoaded.WithLabelValues("ai").Observe(float64(loaded))

	if loaded == 0 {
		return models.NewsDigest{
			Articles: []models.ArticleRecord{},
			Error:    "All feeds failed",
		}
	}

	filtered := all[:0]
	for _, art := range all {
		if isAIRelated(art) {
			filtered = append(filtered, art)
		}
	}

	sortByDateDesc(filtered)
	if len(filtered) > a.cfg.Feeds.MaxAI {
		filtered = filtered[:a.cfg.Feeds.MaxAI]
	}
	for i := range filtered {
		sentiment.Annotate(&filtered[i])
	}

	digest := models.NewsDigest{Articles: filtered, FeedsLoaded: loaded, Origin: "rss"}
	if userID == "" {
		_ = a.cache.Set(ctx, cacheKey, digest, a.cfg.Cache.NewsTTL)
	}
	return digest
}

func isAIRelated(a models.ArticleRecord) bool {
	text := strings.ToLower(a.Title + " " + a.Summary)
	for _, kw := range aiKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
