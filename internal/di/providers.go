package di

import (
	"fmt"

	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/feed"
	"FinBoard/internal/handler/api"
	"FinBoard/internal/keystore"
	"FinBoard/internal/provider/alphavantage"
	"FinBoard/internal/provider/finnhub"
	"FinBoard/internal/provider/newsapi"
	"FinBoard/internal/provider/yahoo"
	"FinBoard/internal/service/ratelimit"
	"FinBoard/internal/usecase"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return xlogger.New(&xlogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideCache creates the shared cache: Redis when configured, in-process
// memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideKeyStore creates the per-user credential store.
func ProvideKeyStore(c cache.Service, cfg *config.Config) *keystore.Store {
	return keystore.New(c, cfg)
}

// ProvideYahoo creates the Yahoo Finance adapter.
func ProvideYahoo(cfg *config.Config) *yahoo.Client {
	return yahoo.New(cfg)
}

// ProvideFinnhub creates the Finnhub adapter.
func ProvideFinnhub(cfg *config.Config) *finnhub.Client {
	return finnhub.New(cfg)
}

// ProvideAlphaVantage creates the Alpha Vantage adapter.
func ProvideAlphaVantage(cfg *config.Config) *alphavantage.Client {
	return alphavantage.New(cfg)
}

// ProvideHeadlineSource creates the News API fallback source.
func ProvideHeadlineSource(cfg *config.Config) domsvc.HeadlineSource {
	return newsapi.New(cfg)
}

// ProvideSectorPerformance exposes Alpha Vantage as the live sector source.
func ProvideSectorPerformance(av *alphavantage.Client) domsvc.SectorPerformance {
	return av
}

// ProvideFeedFetcher creates the RSS/Atom fetcher.
func ProvideFeedFetcher(cfg *config.Config) *feed.Fetcher {
	return feed.NewFetcher(cfg)
}

// ProvidePacer creates the inter-call pacer for quota-metered upstreams.
func ProvidePacer(cfg *config.Config) *ratelimit.Pacer {
	return ratelimit.NewPacer(cfg.AlphaVantage.MinInterval)
}

// ProvideNewsAggregator creates the news aggregation use case.
func ProvideNewsAggregator(fetcher *feed.Fetcher, fallback domsvc.HeadlineSource, keys *keystore.Store, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *usecase.NewsAggregator {
	return usecase.NewNewsAggregator(fetcher, fallback, keys, c, cfg, logger)
}

// ProvideMarketService creates the market data use case.
func ProvideMarketService(y *yahoo.Client, fh *finnhub.Client, av *alphavantage.Client, keys *keystore.Store, c cache.Service, pacer *ratelimit.Pacer, cfg *config.Config, logger *xlogger.Logger) *usecase.MarketService {
	return usecase.NewMarketService(y, fh, av, keys, c, pacer, cfg, logger)
}

// ProvideSectorService creates the sector overlay use case.
func ProvideSectorService(live domsvc.SectorPerformance, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *usecase.SectorService {
	return usecase.NewSectorService(live, c, cfg, logger)
}

// ProvideScreener creates the paced valuation screener.
func ProvideScreener(market *usecase.MarketService, pacer *ratelimit.Pacer, c cache.Service, cfg *config.Config, logger *xlogger.Logger) *usecase.Screener {
	return usecase.NewScreener(market, pacer, c, cfg, logger)
}

// ProvideHandler creates the API handler.
func ProvideHandler(logger *xlogger.Logger, news *usecase.NewsAggregator, market *usecase.MarketService, sectorsSvc *usecase.SectorService, screen *usecase.Screener, keys *keystore.Store) xhttp.Handler {
	return api.NewHandler(logger, news, market, sectorsSvc, screen, keys)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *xlogger.Logger, handler xhttp.Handler, c cache.Service) *server.App {
	app := server.New(cfg, logger, handler)
	if closer, ok := c.(interface{ Close() error }); ok {
		app.AddCloser(closer)
	}
	return app
}
