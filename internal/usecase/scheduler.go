package usecase

import (
	"context"
	"time"

	applogger "TradePulse/pkg/logger"
)

// UpdateScheduler runs the daily bar refresh for the tracked tickers on a
// fixed interval. One refresh runs at startup so a fresh deployment has
// history before the first tick.
type UpdateScheduler struct {
	daily    *DailyUpdateUseCase
	tickers  []string
	interval time.Duration
	l        *applogger.Logger
}

func NewUpdateScheduler(daily *DailyUpdateUseCase, tickers []string, interval time.Duration, l *applogger.Logger) *UpdateScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &UpdateScheduler{daily: daily, tickers: tickers, interval: interval, l: l}
}

// Start launches the refresh loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *UpdateScheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *UpdateScheduler) loop(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *UpdateScheduler) runOnce(ctx context.Context) {
	start := time.Now()
	if err := s.daily.UpdateAll(ctx, s.tickers); err != nil {
		if s.l != nil {
			s.l.Warn("scheduled update finished with errors", applogger.Error(err))
		}
		return
	}
	if s.l != nil {
		s.l.Info("scheduled update complete",
			applogger.Int("tickers", len(s.tickers)),
			applogger.Duration("elapsed", time.Since(start)),
		)
	}
}
