package usecase

import (
	"context"
	"sort"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/service/metrics"
	"FinBoard/internal/service/ratelimit"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
)

// fundamentalsSource is the slice of the market service the screener needs.
type fundamentalsSource interface {
	Overview(ctx context.Context, ticker, userID string) (models.ValuationResult, error)
}

// Screener walks the configured ticker list sequentially through the pacer
// and ranks the results by valuation score. Sequential on purpose: the
// fundamentals upstreams meter free keys per minute, so fan-out would just
// trade pacing for throttling errors.
type Screener struct {
	market fundamentalsSource
	pacer  *ratelimit.Pacer
	cache  cache.Service
	cfg    *config.Config
	logger *xlogger.Logger
}

func NewScreener(market fundamentalsSource, pacer *ratelimit.Pacer, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *Screener {
	return &Screener{market: market, pacer: pacer, cache: c, cfg: cfg, logger: logger}
}

// Run screens the configured tickers for userID. Failed tickers are dropped,
// not fatal; the result is sorted by score descending.
func (s *Screener) Run(ctx context.Context, userID string) ([]models.ValuationResult, error) {
	cacheKey := "screener"
	if userID == "" {
		var cached []models.ValuationResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	results := make([]models.ValuationResult, 0, len(s.cfg.Screener.Tickers))
	for _, ticker := range s.cfg.Screener.Tickers {
		if err := s.pacer.Wait(ctx, "screener"); err != nil {
			return nil, err
		}

		start := time.Now()
		res, err := s.market.Overview(ctx, ticker, userID)
		metrics.ObserveUpstream("screener", start, err)
		if err != nil {
			s.logger.Warn("screener ticker skipped",
				xlogger.String("ticker", ticker),
				xlogger.Error(err),
			)
			continue
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if userID == "" && len(results) > 0 {
		_ = s.cache.Set(ctx, cacheKey, results, s.cfg.Cache.FundamentalsTTL)
	}
	return results, nil
}
