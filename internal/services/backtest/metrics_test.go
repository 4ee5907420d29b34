package backtest

import (
	"math"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
)

func equityCurve(values ...float64) []models.EquityPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.EquityPoint, len(values))
	for i, v := range values {
		out[i] = models.EquityPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"monotonic rise", []float64{100, 110, 120}, 0},
		{"single dip", []float64{100, 80, 120}, 0.2},
		{"deepest after later peak", []float64{100, 90, 150, 75, 120}, 0.5},
		{"flat", []float64{100, 100, 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxDrawdown(equityCurve(tt.values...))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("maxDrawdown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSharpeZeroVariance(t *testing.T) {
	if got := sharpe([]float64{0.01, 0.01, 0.01}); got != 0 {
		t.Errorf("sharpe on constant returns = %v, want 0", got)
	}
	if got := sharpe(nil); got != 0 {
		t.Errorf("sharpe on empty returns = %v, want 0", got)
	}
}

func TestSharpeAnnualizes(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, 0.0}
	mu := mean(returns)
	var variance float64
	for _, r := range returns {
		d := r - mu
		variance += d * d
	}
	variance /= float64(len(returns))
	want := mu / math.Sqrt(variance) * math.Sqrt(252)

	if got := sharpe(returns); math.Abs(got-want) > 1e-12 {
		t.Errorf("sharpe = %v, want %v", got, want)
	}
}

func TestCAGR(t *testing.T) {
	// Doubling over exactly one year is a 100% annualized rate.
	got := cagr(10_000, 20_000, 365.25)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("cagr = %v, want 1.0", got)
	}
	if got := cagr(10_000, 10_000, 365.25); got != 0 {
		t.Errorf("flat cagr = %v, want 0", got)
	}
	if got := cagr(10_000, 20_000, 0); got != 0 {
		t.Errorf("zero-span cagr = %v, want 0", got)
	}
}

func TestComputeMetricsTradeStats(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := []models.SimTrade{
		{Date: start, Side: models.SideBuy, Quantity: 10, Price: 100},
		{Date: start.AddDate(0, 0, 5), Side: models.SideSell, Quantity: 10, Price: 110, RealizedPnL: 100},
		{Date: start.AddDate(0, 0, 10), Side: models.SideBuy, Quantity: 10, Price: 110},
		{Date: start.AddDate(0, 0, 15), Side: models.SideSell, Quantity: 10, Price: 99, RealizedPnL: -110},
	}
	tradeReturns := []float64{0.1, -0.1}
	equity := equityCurve(10_000, 10_100, 9_990)

	m := computeMetrics(10_000, 9_990, 15, equity, trades, tradeReturns)

	if m.TotalTrades != 2 {
		t.Errorf("totalTrades = %d, want 2", m.TotalTrades)
	}
	if m.ProfitableTrades != 1 {
		t.Errorf("profitableTrades = %d, want 1", m.ProfitableTrades)
	}
	if m.WinRate != 0.5 {
		t.Errorf("winRate = %v, want 0.5", m.WinRate)
	}
	if math.Abs(m.AverageReturn) > 1e-12 {
		t.Errorf("averageReturn = %v, want 0", m.AverageReturn)
	}
	if m.TotalReturn != (9_990-10_000)/10_000.0 {
		t.Errorf("totalReturn = %v", m.TotalReturn)
	}
}
