package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "TradePulse/internal/domain/repository"
	applogger "TradePulse/pkg/logger"
)

// DailyUpdateUseCase keeps stored history current by fetching the bars the
// store does not have yet from the market-data provider.
type DailyUpdateUseCase struct {
	store  domrepo.PriceStore
	market domrepo.MarketData
	l      *applogger.Logger
}

func NewDailyUpdateUseCase(store domrepo.PriceStore, market domrepo.MarketData, l *applogger.Logger) *DailyUpdateUseCase {
	return &DailyUpdateUseCase{store: store, market: market, l: l}
}

// UpdateTicker fetches and stores bars newer than the last stored date.
// Returns the number of bars ingested.
func (uc *DailyUpdateUseCase) UpdateTicker(ctx context.Context, ticker string) (int, error) {
	if ticker == "" {
		return 0, fmt.Errorf("ticker required")
	}
	now := time.Now().UTC()

	last, err := uc.store.LastDate(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("last date %s: %w", ticker, err)
	}
	from := last.AddDate(0, 0, 1)
	if last.IsZero() {
		// First sight of this ticker: backfill enough history for the
		// longest built-in strategy plus a year of evaluation room.
		from = now.AddDate(-2, 0, 0)
	}
	if !from.Before(now) {
		return 0, nil
	}

	bars, err := uc.market.FetchDailyBars(ctx, ticker, from, now)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return 0, nil
	}
	if err := uc.store.StoreBars(ctx, ticker, bars); err != nil {
		return 0, fmt.Errorf("store %s: %w", ticker, err)
	}
	if uc.l != nil {
		uc.l.Info("daily update",
			applogger.String("ticker", ticker),
			applogger.Int("bars", len(bars)),
		)
	}
	return len(bars), nil
}

// UpdateAll updates every tracked ticker, continuing past individual
// failures.
func (uc *DailyUpdateUseCase) UpdateAll(ctx context.Context, tickers []string) error {
	var firstErr error
	for _, t := range tickers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := uc.UpdateTicker(ctx, t); err != nil {
			if uc.l != nil {
				uc.l.Error("daily update failed",
					applogger.String("ticker", t),
					applogger.Error(err),
				)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
