package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	"TradePulse/internal/services/backtest"
	applogger "TradePulse/pkg/logger"
)

// SweepUseCase runs one backtest per strategy over the same series. Runs are
// independent, so they fan out over a bounded worker pool.
type SweepUseCase struct {
	store   domrepo.PriceStore
	sim     *backtest.Simulator
	workers int
	l       *applogger.Logger
}

func NewSweepUseCase(store domrepo.PriceStore, sim *backtest.Simulator, workers int, l *applogger.Logger) *SweepUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &SweepUseCase{store: store, sim: sim, workers: workers, l: l}
}

type SweepParams struct {
	Ticker              string
	StrategyKeys        []string
	From                time.Time
	To                  time.Time
	InitialCapital      float64
	PositionSizePercent float64
}

// SweepEntry is one strategy's outcome inside a sweep. Err is set when that
// strategy's run failed; the sweep itself still succeeds.
type SweepEntry struct {
	StrategyKey string                 `json:"strategyKey"`
	Result      *models.BacktestResult `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// Run backtests every requested strategy over the same stored range and
// returns entries sorted by descending total return, failures last.
func (uc *SweepUseCase) Run(ctx context.Context, p SweepParams) ([]SweepEntry, error) {
	if p.Ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	if len(p.StrategyKeys) == 0 {
		return nil, fmt.Errorf("at least one strategy required")
	}

	series, err := uc.store.GetDailyBars(ctx, p.Ticker, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("load bars: %w", err)
	}
	if len(series) == 0 {
		return nil, &models.DateRangeEmptyError{Ticker: p.Ticker, From: p.From, To: p.To}
	}

	entries := make([]SweepEntry, len(p.StrategyKeys))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i, key := range p.StrategyKeys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := uc.sim.Run(ctx, backtest.Params{
				Ticker:              p.Ticker,
				StrategyKey:         key,
				InitialCapital:      p.InitialCapital,
				PositionSizePercent: p.PositionSizePercent,
			}, series)
			if err != nil {
				entries[i] = SweepEntry{StrategyKey: key, Error: err.Error()}
				return
			}
			entries[i] = SweepEntry{StrategyKey: key, Result: &res}
		}(i, key)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		ra, rb := entries[a].Result, entries[b].Result
		if ra == nil || rb == nil {
			return rb == nil && ra != nil
		}
		return ra.Metrics.TotalReturn > rb.Metrics.TotalReturn
	})

	if uc.l != nil {
		uc.l.Info("backtest sweep complete",
			applogger.String("ticker", p.Ticker),
			applogger.Int("strategies", len(p.StrategyKeys)),
			applogger.Int("bars", len(series)),
		)
	}
	return entries, nil
}
