package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/backtest"
	"TradePulse/internal/services/indicator"
	"TradePulse/internal/services/strategy"
)

type fakePublisher struct {
	published []*models.Signal
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, s *models.Signal) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, s)
	return nil
}

func (f *fakePublisher) PublishBatch(ctx context.Context, signals []*models.Signal) error {
	f.published = append(f.published, signals...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newEngines() (*indicator.Engine, *strategy.Engine) {
	ind := indicator.NewEngine()
	return ind, strategy.NewEngine(strategy.NewDefaultRegistry(), ind, nil)
}

func risingSeries(n int) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(models.PriceSeries, n)
	for i := range out {
		price := 100.0 + float64(i)*0.5
		out[i] = models.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return out
}

func TestEvaluateSignalPublishes(t *testing.T) {
	store := newFakeStore()
	store.bars["AAPL"] = risingSeries(260)
	pub := &fakePublisher{}
	ind, strat := newEngines()

	uc := NewAnalysisUseCase(store, ind, strat, nil, pub, nil, 0, nil)
	sig, err := uc.EvaluateSignal(context.Background(), EvaluateSignalParams{
		Ticker:      "AAPL",
		StrategyKey: "trend_following",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("expected buy on a steadily rising series, got %s", sig.Action)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published signal, got %d", len(pub.published))
	}
	if pub.published[0].Ticker != "AAPL" {
		t.Fatalf("published wrong ticker %q", pub.published[0].Ticker)
	}
}

func TestEvaluateSignalPublishFailureIsBestEffort(t *testing.T) {
	store := newFakeStore()
	store.bars["AAPL"] = risingSeries(260)
	pub := &fakePublisher{err: errors.New("broker down")}
	ind, strat := newEngines()

	uc := NewAnalysisUseCase(store, ind, strat, nil, pub, nil, 0, nil)
	if _, err := uc.EvaluateSignal(context.Background(), EvaluateSignalParams{
		Ticker:      "AAPL",
		StrategyKey: "trend_following",
	}); err != nil {
		t.Fatalf("publish failure must not fail evaluation: %v", err)
	}
}

func TestEvaluateSignalNoHistory(t *testing.T) {
	store := newFakeStore()
	ind, strat := newEngines()

	uc := NewAnalysisUseCase(store, ind, strat, nil, nil, nil, 0, nil)
	_, err := uc.EvaluateSignal(context.Background(), EvaluateSignalParams{
		Ticker:      "GONE",
		StrategyKey: "trend_following",
	})
	var empty *models.DateRangeEmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected DateRangeEmptyError, got %v", err)
	}
}

func TestComputeIndicatorsOverRange(t *testing.T) {
	store := newFakeStore()
	series := risingSeries(60)
	store.bars["AAPL"] = series
	ind, strat := newEngines()

	uc := NewAnalysisUseCase(store, ind, strat, nil, nil, nil, 0, nil)
	res, err := uc.ComputeIndicators(context.Background(), ComputeIndicatorsParams{
		Ticker: "AAPL",
		From:   series[0].Date,
		To:     series[len(series)-1].Date,
		Configs: []models.IndicatorConfig{
			{Type: models.IndicatorSMA, Window: 20},
			{Type: models.IndicatorRSI, Window: 14},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Bars != 60 {
		t.Fatalf("expected 60 bars, got %d", res.Bars)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 indicator results, got %d", len(res.Results))
	}
}

func TestSweepOrdersFailuresLast(t *testing.T) {
	store := newFakeStore()
	series := risingSeries(260)
	store.bars["AAPL"] = series
	_, strat := newEngines()
	sim := backtest.NewSimulator(strat, nil)

	uc := NewSweepUseCase(store, sim, 2, nil)
	entries, err := uc.Run(context.Background(), SweepParams{
		Ticker:         "AAPL",
		StrategyKeys:   []string{"no_such_strategy", "trend_following", "momentum"},
		From:           series[0].Date,
		To:             series[len(series)-1].Date,
		InitialCapital: 10_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if last := entries[len(entries)-1]; last.Error == "" || last.StrategyKey != "no_such_strategy" {
		t.Fatalf("expected the failed strategy last, got %+v", last)
	}
	for _, e := range entries[:2] {
		if e.Result == nil {
			t.Fatalf("expected a result for %s", e.StrategyKey)
		}
	}
}
