package service

import (
	"context"

	"FinBoard/internal/domain/models"
)

// MarketData is the capability interface every upstream adapter implements.
// Callers depend on this, never on provider-specific field names, so adding
// or reordering providers is a configuration change.
type MarketData interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (models.Quote, error)
	FetchSeries(ctx context.Context, symbol, rng string) (models.Series, error)
	FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsOverview, error)
}

// SectorPerformance supplies live sector performance keyed by provider label.
type SectorPerformance interface {
	FetchSectorPerf(ctx context.Context) (map[string]models.SectorPerf, error)
}

// HeadlineSource is the fallback news provider used when every feed fails.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, apiKey string, limit int) ([]models.ArticleRecord, error)
}
