package usecase

import (
	"context"
	"fmt"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	"TradePulse/internal/services/backtest"
	applogger "TradePulse/pkg/logger"
)

// BacktestUseCase loads stored history and replays a strategy over it.
type BacktestUseCase struct {
	store   domrepo.PriceStore
	sim     *backtest.Simulator
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewBacktestUseCase(store domrepo.PriceStore, sim *backtest.Simulator, metrics domrepo.Metrics, l *applogger.Logger) *BacktestUseCase {
	return &BacktestUseCase{store: store, sim: sim, metrics: metrics, l: l}
}

type RunBacktestParams struct {
	Ticker              string
	StrategyKey         string
	From                time.Time
	To                  time.Time
	InitialCapital      float64
	PositionSizePercent float64
}

// Run executes one backtest over the stored range.
func (uc *BacktestUseCase) Run(ctx context.Context, p RunBacktestParams) (*models.BacktestResult, error) {
	if p.Ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}

	series, err := uc.store.GetDailyBars(ctx, p.Ticker, p.From, p.To)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("price_store")
		}
		return nil, fmt.Errorf("load bars: %w", err)
	}
	if len(series) == 0 {
		return nil, &models.DateRangeEmptyError{Ticker: p.Ticker, From: p.From, To: p.To}
	}

	start := time.Now()
	result, err := uc.sim.Run(ctx, backtest.Params{
		Ticker:              p.Ticker,
		StrategyKey:         p.StrategyKey,
		InitialCapital:      p.InitialCapital,
		PositionSizePercent: p.PositionSizePercent,
	}, series)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("backtest_run")
		}
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.RecordBacktest(p.StrategyKey, time.Since(start).Seconds())
	}
	if uc.l != nil {
		uc.l.Info("backtest run",
			applogger.String("ticker", p.Ticker),
			applogger.String("strategy", p.StrategyKey),
			applogger.Int("bars", len(series)),
			applogger.Int("trades", len(result.Trades)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return &result, nil
}
