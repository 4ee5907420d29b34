package repository

import (
	"context"
	"time"

	"TradePulse/internal/domain/models"
)

// MarketData fetches historical daily bars from the upstream provider.
type MarketData interface {
	FetchDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error)
}

// QuoteStream is a live trade-print feed for tracked tickers.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// SignalPublisher emits consolidated signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, s *models.Signal) error
	PublishBatch(ctx context.Context, signals []*models.Signal) error
	Close() error
}

// Metrics records engine and pipeline observations.
type Metrics interface {
	RecordSignal(strategy string, action models.SignalAction)
	RecordBacktest(strategy string, seconds float64)
	RecordError(kind string)
	RecordLastClose(ticker string, price float64)
	RecordLatency(op string, seconds float64)
}
