package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
)

type fakeStore struct {
	bars     map[string]models.PriceSeries
	last     map[string]time.Time
	stored   map[string][]models.PricePoint
	storeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bars:   make(map[string]models.PriceSeries),
		last:   make(map[string]time.Time),
		stored: make(map[string][]models.PricePoint),
	}
}

func (f *fakeStore) Init(ctx context.Context) error { return nil }

func (f *fakeStore) GetDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	return f.bars[ticker].Between(from, to), nil
}

func (f *fakeStore) GetLatestBars(ctx context.Context, ticker string, n int) (models.PriceSeries, error) {
	s := f.bars[ticker]
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s, nil
}

func (f *fakeStore) StoreBars(ctx context.Context, ticker string, bars []models.PricePoint) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored[ticker] = append(f.stored[ticker], bars...)
	return nil
}

func (f *fakeStore) LastDate(ctx context.Context, ticker string) (time.Time, error) {
	return f.last[ticker], nil
}

func (f *fakeStore) Health(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                     { return nil }

type fakeMarket struct {
	fetch func(ticker string, from, to time.Time) (models.PriceSeries, error)

	calls []string
}

func (f *fakeMarket) FetchDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	f.calls = append(f.calls, ticker)
	return f.fetch(ticker, from, to)
}

func barsFrom(start time.Time, n int) models.PriceSeries {
	out := make(models.PriceSeries, n)
	for i := range out {
		price := 100.0 + float64(i)
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

func TestUpdateTickerBackfillsNewTicker(t *testing.T) {
	store := newFakeStore()
	var gotFrom time.Time
	market := &fakeMarket{fetch: func(ticker string, from, to time.Time) (models.PriceSeries, error) {
		gotFrom = from
		return barsFrom(from, 5), nil
	}}
	uc := NewDailyUpdateUseCase(store, market, nil)

	n, err := uc.UpdateTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bars ingested, got %d", n)
	}
	if len(store.stored["AAPL"]) != 5 {
		t.Fatalf("expected 5 bars stored, got %d", len(store.stored["AAPL"]))
	}

	// A ticker with no history backfills roughly two years.
	wantFrom := time.Now().UTC().AddDate(-2, 0, 0)
	if diff := gotFrom.Sub(wantFrom); diff < -time.Hour || diff > time.Hour {
		t.Fatalf("backfill from = %v, want about %v", gotFrom, wantFrom)
	}
}

func TestUpdateTickerIncremental(t *testing.T) {
	store := newFakeStore()
	last := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -3)
	store.last["AAPL"] = last

	var gotFrom time.Time
	market := &fakeMarket{fetch: func(ticker string, from, to time.Time) (models.PriceSeries, error) {
		gotFrom = from
		return barsFrom(from, 2), nil
	}}
	uc := NewDailyUpdateUseCase(store, market, nil)

	n, err := uc.UpdateTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 bars, got %d", n)
	}
	if want := last.AddDate(0, 0, 1); !gotFrom.Equal(want) {
		t.Fatalf("fetch from = %v, want %v", gotFrom, want)
	}
}

func TestUpdateTickerUpToDate(t *testing.T) {
	store := newFakeStore()
	store.last["AAPL"] = time.Now().UTC()

	market := &fakeMarket{fetch: func(ticker string, from, to time.Time) (models.PriceSeries, error) {
		return nil, fmt.Errorf("fetch should not be called")
	}}
	uc := NewDailyUpdateUseCase(store, market, nil)

	n, err := uc.UpdateTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bars, got %d", n)
	}
	if len(market.calls) != 0 {
		t.Fatalf("expected no fetch calls, got %d", len(market.calls))
	}
}

func TestUpdateAllContinuesPastFailures(t *testing.T) {
	store := newFakeStore()
	market := &fakeMarket{fetch: func(ticker string, from, to time.Time) (models.PriceSeries, error) {
		if ticker == "BAD" {
			return nil, fmt.Errorf("upstream down")
		}
		return barsFrom(from, 3), nil
	}}
	uc := NewDailyUpdateUseCase(store, market, nil)

	err := uc.UpdateAll(context.Background(), []string{"BAD", "AAPL"})
	if err == nil {
		t.Fatal("expected the first failure to surface")
	}
	if len(store.stored["AAPL"]) != 3 {
		t.Fatalf("expected AAPL to update despite BAD failing, got %d bars", len(store.stored["AAPL"]))
	}
}

func TestUpdateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewDailyUpdateUseCase(newFakeStore(), &fakeMarket{}, nil)
	if err := uc.UpdateAll(ctx, []string{"AAPL"}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
