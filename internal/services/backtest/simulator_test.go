package backtest

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicator"
	"TradePulse/internal/services/strategy"
)

func seriesOf(closes ...float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}

func rising(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func constant(n int, c float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// reversalCloses dips below the band then rallies hard, forcing one
// buy/sell round trip out of the mean-reversion strategy.
func reversalCloses() []float64 {
	closes := append(constant(25, 100), 96, 92, 88, 84, 80)
	return append(closes, rising(16, 88, 8)...)
}

func newTestSimulator() *Simulator {
	eng := strategy.NewEngine(strategy.NewDefaultRegistry(), indicator.NewEngine(), nil)
	return NewSimulator(eng, nil)
}

func TestRunValidation(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(constant(60, 100)...)

	tests := []struct {
		name   string
		params Params
		series models.PriceSeries
		check  func(error) bool
	}{
		{
			"zero capital",
			Params{Ticker: "AAPL", StrategyKey: strategy.KeyMeanReversion},
			series,
			func(err error) bool {
				var e *models.InvalidParameterError
				return errors.As(err, &e)
			},
		},
		{
			"oversized position",
			Params{Ticker: "AAPL", StrategyKey: strategy.KeyMeanReversion, InitialCapital: 10_000, PositionSizePercent: 150},
			series,
			func(err error) bool {
				var e *models.InvalidParameterError
				return errors.As(err, &e)
			},
		},
		{
			"empty range",
			Params{Ticker: "AAPL", StrategyKey: strategy.KeyMeanReversion, InitialCapital: 10_000},
			nil,
			func(err error) bool {
				var e *models.DateRangeEmptyError
				return errors.As(err, &e)
			},
		},
		{
			"unknown strategy",
			Params{Ticker: "AAPL", StrategyKey: "nope", InitialCapital: 10_000},
			series,
			func(err error) bool {
				var e *models.UnknownStrategyError
				return errors.As(err, &e)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.params, tt.series)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}
}

func TestRunInsufficientHistory(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(rising(100, 100, 1)...)

	_, err := sim.Run(context.Background(), Params{
		Ticker:         "AAPL",
		StrategyKey:    strategy.KeyTrendFollowing,
		InitialCapital: 10_000,
	}, series)

	var short *models.InsufficientHistoryError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if short.Need != 200 || short.Have != 100 {
		t.Errorf("need/have = %d/%d, want 200/100", short.Need, short.Have)
	}
}

func TestRunFlatSeriesNoTrades(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(constant(252, 100)...)

	res, err := sim.Run(context.Background(), Params{
		Ticker:         "AAPL",
		StrategyKey:    strategy.KeyTrendFollowing,
		InitialCapital: 10_000,
	}, series)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(res.Trades))
	}
	if res.Metrics.TotalTrades != 0 {
		t.Errorf("totalTrades = %d, want 0", res.Metrics.TotalTrades)
	}
	if res.Metrics.FinalValue != 10_000 {
		t.Errorf("finalValue = %v, want 10000", res.Metrics.FinalValue)
	}
	if res.Metrics.TotalReturn != 0 {
		t.Errorf("totalReturn = %v, want 0", res.Metrics.TotalReturn)
	}
	if res.Metrics.MaxDrawdown != 0 {
		t.Errorf("maxDrawdown = %v, want 0", res.Metrics.MaxDrawdown)
	}
	if res.Metrics.SharpeRatio != 0 {
		t.Errorf("sharpeRatio = %v, want 0 on flat returns", res.Metrics.SharpeRatio)
	}
	if res.Metrics.WinRate != 0 {
		t.Errorf("winRate = %v, want 0 with no trades", res.Metrics.WinRate)
	}
	if len(res.EquityCurve) != len(series) {
		t.Errorf("equity curve length = %d, want %d", len(res.EquityCurve), len(series))
	}
	for _, p := range res.EquityCurve {
		if p.Value != 10_000 {
			t.Fatalf("equity at %v = %v, want 10000", p.Date, p.Value)
		}
	}
}

func TestRunRoundTrip(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(reversalCloses()...)

	res, err := sim.Run(context.Background(), Params{
		Ticker:         "AAPL",
		StrategyKey:    strategy.KeyMeanReversion,
		InitialCapital: 10_000,
	}, series)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Trades) < 2 {
		t.Fatalf("expected at least one round trip, got trades %+v", res.Trades)
	}

	// Trades alternate buy/sell starting with a buy, sells close the full
	// position and carry the realized PnL.
	var lastBuy models.SimTrade
	for i, tr := range res.Trades {
		if i%2 == 0 {
			if tr.Side != models.SideBuy {
				t.Fatalf("trade %d side = %s, want buy", i, tr.Side)
			}
			lastBuy = tr
			continue
		}
		if tr.Side != models.SideSell {
			t.Fatalf("trade %d side = %s, want sell", i, tr.Side)
		}
		if tr.Quantity != lastBuy.Quantity {
			t.Errorf("sell quantity = %d, want %d", tr.Quantity, lastBuy.Quantity)
		}
		wantPnL := (tr.Price - lastBuy.Price) * float64(tr.Quantity)
		if math.Abs(tr.RealizedPnL-wantPnL) > 1e-9 {
			t.Errorf("realizedPnL = %v, want %v", tr.RealizedPnL, wantPnL)
		}
	}

	first := res.Trades[0]
	wantQty := int64(10_000 * DefaultPositionSizePercent / 100 / first.Price)
	if first.Quantity != wantQty {
		t.Errorf("first buy quantity = %d, want %d (half of capital, whole shares)", first.Quantity, wantQty)
	}

	sells := 0
	for _, tr := range res.Trades {
		if tr.Side == models.SideSell {
			sells++
		}
	}
	if res.Metrics.TotalTrades != sells {
		t.Errorf("totalTrades = %d, want %d completed trades", res.Metrics.TotalTrades, sells)
	}
	if res.Metrics.ProfitableTrades == 0 {
		t.Error("expected at least one profitable trade on the rally")
	}
	if res.Metrics.FinalValue != res.EquityCurve[len(res.EquityCurve)-1].Value {
		t.Errorf("finalValue = %v, want last equity point %v",
			res.Metrics.FinalValue, res.EquityCurve[len(res.EquityCurve)-1].Value)
	}
}

// Replaying the trade log against the series must reproduce the equity curve
// exactly: cash plus holdings never leaks or double counts.
func TestRunAccountingInvariant(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(reversalCloses()...)

	res, err := sim.Run(context.Background(), Params{
		Ticker:         "AAPL",
		StrategyKey:    strategy.KeyMeanReversion,
		InitialCapital: 10_000,
	}, series)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	cash := 10_000.0
	var qty int64
	next := 0
	for i, bar := range series {
		for next < len(res.Trades) && res.Trades[next].Date.Equal(bar.Date) {
			tr := res.Trades[next]
			if tr.Side == models.SideBuy {
				cash -= float64(tr.Quantity) * tr.Price
				qty += tr.Quantity
			} else {
				cash += float64(tr.Quantity) * tr.Price
				qty -= tr.Quantity
			}
			next++
		}
		want := cash + float64(qty)*bar.Close
		if math.Abs(res.EquityCurve[i].Value-want) > 1e-9 {
			t.Fatalf("equity[%d] = %v, want cash+holdings = %v", i, res.EquityCurve[i].Value, want)
		}
	}
	if next != len(res.Trades) {
		t.Errorf("replayed %d of %d trades", next, len(res.Trades))
	}
}

func TestRunDeterministic(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(reversalCloses()...)
	params := Params{Ticker: "AAPL", StrategyKey: strategy.KeyMeanReversion, InitialCapital: 10_000}

	first, err := sim.Run(context.Background(), params, series)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sim.Run(context.Background(), params, series)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical runs produced different results")
	}
}

func TestRunCancelled(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(constant(252, 100)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, Params{
		Ticker:         "AAPL",
		StrategyKey:    strategy.KeyTrendFollowing,
		InitialCapital: 10_000,
	}, series)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunCustomPositionSize(t *testing.T) {
	sim := newTestSimulator()
	series := seriesOf(reversalCloses()...)

	res, err := sim.Run(context.Background(), Params{
		Ticker:              "AAPL",
		StrategyKey:         strategy.KeyMeanReversion,
		InitialCapital:      10_000,
		PositionSizePercent: 100,
	}, series)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Trades) == 0 {
		t.Fatal("expected trades")
	}
	first := res.Trades[0]
	if want := int64(10_000 / first.Price); first.Quantity != want {
		t.Errorf("full-size buy quantity = %d, want %d", first.Quantity, want)
	}
}
