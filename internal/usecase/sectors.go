package usecase

import (
	"context"
	"time"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/sectors"
	"FinBoard/internal/service/metrics"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
)

// SectorService overlays live sector performance onto the static reference
// table. Live data is best-effort: on any upstream failure the static
// baseline is served unchanged.
type SectorService struct {
	live   domsvc.SectorPerformance
	cache  cache.Service
	cfg    *config.Config
	logger *xlogger.Logger
}

func NewSectorService(live domsvc.SectorPerformance, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *SectorService {
	return &SectorService{live: live, cache: c, cfg: cfg, logger: logger}
}

// Sectors returns the sector table, live-merged when the provider responds.
func (s *SectorService) Sectors(ctx context.Context) []models.Sector {
	cacheKey := "sectors"
	var cached []models.Sector
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached
	}

	start := time.Now()
	perf, err := s.live.FetchSectorPerf(ctx)
	metrics.ObserveUpstream("alphavantage", start, err)
	if err != nil {
		s.logger.Warn("live sector fetch failed, serving reference data", xlogger.Error(err))
		return sectors.Reference()
	}

	merged := sectors.Merge(perf)
	_ = s.cache.Set(ctx, cacheKey, merged, s.cfg.Cache.SectorsTTL)
	return merged
}
