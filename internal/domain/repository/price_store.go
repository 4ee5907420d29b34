package repository

import (
	"context"
	"time"

	"TradePulse/internal/domain/models"
)

// PriceStore provides access to historical daily bars.
type PriceStore interface {
	// Init ensures the backing schema exists.
	Init(ctx context.Context) error

	// GetDailyBars returns bars with from <= date <= to in ascending order.
	GetDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error)

	// GetLatestBars returns the most recent n bars in ascending order.
	GetLatestBars(ctx context.Context, ticker string, n int) (models.PriceSeries, error)

	// StoreBars inserts or replaces daily bars for a ticker.
	StoreBars(ctx context.Context, ticker string, bars []models.PricePoint) error

	// LastDate returns the date of the newest stored bar, or the zero time
	// when the ticker has no history yet.
	LastDate(ctx context.Context, ticker string) (time.Time, error)

	Health(ctx context.Context) error
	Close() error
}
