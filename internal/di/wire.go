//go:build wireinject
// +build wireinject

package di

import (
	"TradePulse/pkg/config"
	"TradePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvidePriceStore,
		ProvideSignalPublisher,
		ProvideMarketData,

		// Engines
		ProvideIndicatorEngine,
		ProvideStrategyEngine,
		ProvideSimulator,

		// Use cases
		ProvideAnalysisUseCase,
		ProvideBacktestUseCase,
		ProvideDailyUpdateUseCase,
		ProvideSweepUseCase,
		ProvideQuoteWatcher,
		ProvideUpdateScheduler,
		ProvideQueueConsumer,

		// HTTP and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
