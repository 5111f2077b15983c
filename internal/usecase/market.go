package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"FinBoard/internal/analysis"
	"FinBoard/internal/domain/models"
	"FinBoard/internal/keystore"
	"FinBoard/internal/provider/alphavantage"
	"FinBoard/internal/provider/finnhub"
	"FinBoard/internal/provider/yahoo"
	"FinBoard/internal/service/metrics"
	"FinBoard/internal/service/ratelimit"
	"FinBoard/internal/valuation"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
)

// MarketService serves quotes, series, analysis and valuation. Each
// operation has a primary provider and an ordered fallback; providers are
// swapped per call when the user has saved their own keys.
type MarketService struct {
	yahoo   *yahoo.Client
	finnhub *finnhub.Client
	av      *alphavantage.Client
	keys    *keystore.Store
	cache   cache.Service
	pacer   *ratelimit.Pacer
	cfg     *config.Config
	logger  *xlogger.Logger
}

func NewMarketService(y *yahoo.Client, fh *finnhub.Client, av *alphavantage.Client, keys *keystore.Store, c cache.Service, pacer *ratelimit.Pacer, cfg *config.Config, logger *xlogger.Logger) *MarketService {
	return &MarketService{
		yahoo:   y,
		finnhub: fh,
		av:      av,
		keys:    keys,
		cache:   c,
		pacer:   pacer,
		cfg:     cfg,
		logger:  logger,
	}
}

// Quote fetches the latest quote, Finnhub first, Yahoo as fallback.
func (s *MarketService) Quote(ctx context.Context, ticker, userID string) (models.Quote, error) {
	cacheKey := "quote:" + ticker
	var cached models.Quote
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	keys, err := s.keys.Resolve(ctx, userID)
	if err != nil {
		s.logger.Warn("key resolve failed, using defaults", xlogger.Error(err))
	}

	start := time.Now()
	q, err := s.finnhub.WithKey(keys.Finnhub).FetchQuote(ctx, ticker)
	metrics.ObserveUpstream("finnhub", start, err)
	if err != nil {
		s.logger.Warn("finnhub quote failed, trying yahoo",
			xlogger.String("ticker", ticker),
			xlogger.Error(err),
		)
		start = time.Now()
		q, err = s.yahoo.FetchQuote(ctx, ticker)
		metrics.ObserveUpstream("yahoo", start, err)
		if err != nil {
			return models.Quote{}, err
		}
	}

	_ = s.cache.Set(ctx, cacheKey, q, s.cfg.Cache.QuoteTTL)
	return q, nil
}

// IndexQuote fetches an index quote from the Yahoo chart meta. Index symbols
// (^GSPC style) are not served by the Finnhub free tier.
func (s *MarketService) IndexQuote(ctx context.Context, ticker string) (models.Quote, error) {
	cacheKey := "index:" + ticker
	var cached models.Quote
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	start := time.Now()
	q, err := s.yahoo.FetchQuote(ctx, ticker)
	metrics.ObserveUpstream("yahoo", start, err)
	if err != nil {
		return models.Quote{}, err
	}

	_ = s.cache.Set(ctx, cacheKey, q, s.cfg.Cache.QuoteTTL)
	return q, nil
}

// History returns the last days daily closes from the Yahoo chart. The chart
// range is the smallest one whose trading-day count covers the request.
func (s *MarketService) History(ctx context.Context, ticker string, days int) (models.Series, error) {
	start := time.Now()
	series, err := s.yahoo.FetchSeries(ctx, ticker, rangeForDays(days))
	metrics.ObserveUpstream("yahoo", start, err)
	if err != nil {
		return models.Series{}, err
	}

	if len(series.Points) > days {
		series.Points = series.Points[len(series.Points)-days:]
	}
	return series, nil
}

// rangeForDays maps a day count onto Yahoo's range tokens. Ranges yield
// trading days only (~21 per month), so each bucket is sized conservatively.
func rangeForDays(days int) string {
	switch {
	case days <= 20:
		return "1mo"
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 250:
		return "1y"
	default:
		return "2y"
	}
}

// Analysis computes the technical picture over the requested range. Alpha
// Vantage is primary when a key is available (paced against its quota),
// Yahoo otherwise and on failure.
func (s *MarketService) Analysis(ctx context.Context, ticker, rng, userID string) (models.TechnicalAnalysis, error) {
	keys, err := s.keys.Resolve(ctx, userID)
	if err != nil {
		s.logger.Warn("key resolve failed, using defaults", xlogger.Error(err))
	}

	var series models.Series

	if keys.AlphaVantage != "" {
		if err = s.pacer.Wait(ctx, "alphavantage"); err != nil {
			return models.TechnicalAnalysis{}, err
		}
		start := time.Now()
		series, err = s.av.WithKey(keys.AlphaVantage).FetchSeries(ctx, ticker, rng)
		metrics.ObserveUpstream("alphavantage", start, err)
	} else {
		err = fmt.Errorf("no alphavantage key")
	}
	if err != nil {
		start := time.Now()
		series, err = s.yahoo.FetchSeries(ctx, ticker, rng)
		metrics.ObserveUpstream("yahoo", start, err)
		if err != nil {
			return models.TechnicalAnalysis{}, err
		}
	}

	return analysis.Analyze(series), nil
}

// Overview fetches normalized fundamentals, Yahoo quoteSummary first with
// the Finnhub metric map as fallback, and attaches the valuation score.
func (s *MarketService) Overview(ctx context.Context, ticker, userID string) (models.ValuationResult, error) {
	cacheKey := "overview:" + ticker
	var cached models.ValuationResult
	if userID == "" {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	keys, err := s.keys.Resolve(ctx, userID)
	if err != nil {
		s.logger.Warn("key resolve failed, using defaults", xlogger.Error(err))
	}

	start := time.Now()
	overview, err := s.yahoo.FetchFundamentals(ctx, ticker)
	metrics.ObserveUpstream("yahoo", start, err)
	if err != nil {
		s.logger.Warn("yahoo fundamentals failed, trying finnhub",
			xlogger.String("ticker", ticker),
			xlogger.Error(err),
		)
		start = time.Now()
		overview, err = s.finnhub.WithKey(keys.Finnhub).FetchFundamentals(ctx, ticker)
		metrics.ObserveUpstream("finnhub", start, err)
		if err != nil {
			return models.ValuationResult{}, err
		}
	}

	result := valuation.Score(overview)
	if userID == "" {
		_ = s.cache.Set(ctx, cacheKey, result, s.cfg.Cache.FundamentalsTTL)
	}
	return result, nil
}

// SentimentConsensus combines the latest analyst recommendation counts with
// aggregate news sentiment into one BUY/HOLD/SELL view.
func (s *MarketService) SentimentConsensus(ctx context.Context, ticker, userID string) (models.SentimentConsensus, error) {
	keys, err := s.keys.Resolve(ctx, userID)
	if err != nil {
		s.logger.Warn("key resolve failed, using defaults", xlogger.Error(err))
	}
	client := s.finnhub.WithKey(keys.Finnhub)

	start := time.Now()
	recs, err := client.FetchRecommendations(ctx, ticker)
	metrics.ObserveUpstream("finnhub", start, err)
	if err != nil {
		return models.SentimentConsensus{}, err
	}
	if len(recs) == 0 {
		return models.SentimentConsensus{}, fmt.Errorf("no recommendations for %s", ticker)
	}

	latest := recs[0]
	total := latest.Buy + latest.Hold + latest.Sell
	if total == 0 {
		return models.SentimentConsensus{}, fmt.Errorf("empty recommendation counts for %s", ticker)
	}
	buyScore := float64(latest.Buy) / float64(total) * 100

	overall := "HOLD"
	switch {
	case buyScore > 60:
		overall = "BUY"
	case buyScore < 40:
		overall = "SELL"
	}

	// News sentiment is best-effort; the consensus still renders without it.
	bullish := 50.0
	newsTrend := "No news sentiment available"
	start = time.Now()
	news, nerr := client.FetchNewsSentiment(ctx, ticker)
	metrics.ObserveUpstream("finnhub", start, nerr)
	if nerr == nil {
		bullish = news.Sentiment.BullishPercent
		if news.CompanyNewsScore >= 0.5 {
			newsTrend = "Positive coverage"
		} else {
			newsTrend = "Mixed coverage"
		}
	}

	instScore := 45
	if buyScore > 50 {
		instScore = 75
	}

	return models.SentimentConsensus{
		Ticker:     ticker,
		Overall:    overall,
		Confidence: int(math.Round(buyScore)),
		Breakdown: []models.SentimentBreakdownEntry{
			{Source: "News Sentiment", Score: int(math.Round(bullish)), Trend: newsTrend},
			{Source: "Analyst Ratings", Score: int(math.Round(buyScore)), Trend: fmt.Sprintf("%d Buy, %d Hold, %d Sell", latest.Buy, latest.Hold, latest.Sell)},
			{Source: "Institutional Activity", Score: instScore, Trend: "Derived from analyst consensus"},
		},
		Rationale: fmt.Sprintf("Analyst consensus shows %s rating with %d buy recommendations vs %d sell recommendations.", overall, latest.Buy, latest.Sell),
	}, nil
}
