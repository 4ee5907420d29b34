package usecase

import (
	"context"
	"fmt"

	applogger "TradePulse/pkg/logger"
	"TradePulse/pkg/queue"
	"TradePulse/pkg/util"
)

// Queue message types.
const (
	MsgDailyUpdate = "daily_update"
	MsgSweep       = "backtest_sweep"
)

// DailyUpdatePayload asks the worker to refresh history for tickers.
type DailyUpdatePayload struct {
	Tickers []string `json:"tickers"`
}

// DailyUpdateJob consumes daily-update messages.
type DailyUpdateJob struct {
	uc *DailyUpdateUseCase
	l  *applogger.Logger
}

func NewDailyUpdateJob(uc *DailyUpdateUseCase, l *applogger.Logger) *DailyUpdateJob {
	return &DailyUpdateJob{uc: uc, l: l}
}

func (j *DailyUpdateJob) Name() string { return "daily-update" }
func (j *DailyUpdateJob) Type() string { return MsgDailyUpdate }

func (j *DailyUpdateJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[DailyUpdatePayload](payload)
	if err != nil {
		return fmt.Errorf("daily update payload: %w", err)
	}
	if len(p.Tickers) == 0 {
		return fmt.Errorf("daily update: no tickers")
	}
	return j.uc.UpdateAll(ctx, p.Tickers)
}

// SweepPayload asks the worker to backtest several strategies over one range.
// Dates are "2006-01-02".
type SweepPayload struct {
	Ticker              string   `json:"ticker"`
	StrategyKeys        []string `json:"strategyKeys"`
	From                string   `json:"from"`
	To                  string   `json:"to"`
	InitialCapital      float64  `json:"initialCapital"`
	PositionSizePercent float64  `json:"positionSizePercent,omitempty"`
}

// SweepJob consumes backtest-sweep messages.
type SweepJob struct {
	uc *SweepUseCase
	l  *applogger.Logger
}

func NewSweepJob(uc *SweepUseCase, l *applogger.Logger) *SweepJob {
	return &SweepJob{uc: uc, l: l}
}

func (j *SweepJob) Name() string { return "backtest-sweep" }
func (j *SweepJob) Type() string { return MsgSweep }

func (j *SweepJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[SweepPayload](payload)
	if err != nil {
		return fmt.Errorf("sweep payload: %w", err)
	}
	from, ok := util.ParseTime(p.From)
	if !ok {
		return fmt.Errorf("sweep: bad from date %q", p.From)
	}
	to, ok := util.ParseTime(p.To)
	if !ok {
		return fmt.Errorf("sweep: bad to date %q", p.To)
	}

	entries, err := j.uc.Run(ctx, SweepParams{
		Ticker:              p.Ticker,
		StrategyKeys:        p.StrategyKeys,
		From:                from,
		To:                  to,
		InitialCapital:      p.InitialCapital,
		PositionSizePercent: p.PositionSizePercent,
	})
	if err != nil {
		return err
	}
	if j.l != nil && len(entries) > 0 && entries[0].Result != nil {
		best := entries[0]
		j.l.Info("sweep best strategy",
			applogger.String("ticker", p.Ticker),
			applogger.String("strategy", best.StrategyKey),
			applogger.Any("totalReturn", best.Result.Metrics.TotalReturn),
		)
	}
	return nil
}
