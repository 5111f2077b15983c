//go:build wireinject
// +build wireinject

package di

import (
	"FinBoard/pkg/config"
	"FinBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideCache,
		ProvideKeyStore,
		ProvidePacer,

		// Upstream adapters
		ProvideYahoo,
		ProvideFinnhub,
		ProvideAlphaVantage,
		ProvideHeadlineSource,
		ProvideSectorPerformance,
		ProvideFeedFetcher,

		// Use cases
		ProvideNewsAggregator,
		ProvideMarketService,
		ProvideSectorService,
		ProvideScreener,

		// HTTP
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
