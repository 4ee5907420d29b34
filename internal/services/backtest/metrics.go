package backtest

import (
	"math"

	"TradePulse/internal/domain/models"
)

const tradingDaysPerYear = 252

// computeMetrics derives the performance numbers from a completed run.
// Degenerate cases (zero variance, zero trades, single-bar span) resolve to 0
// rather than NaN or Inf.
func computeMetrics(initialCapital, finalValue, spanDays float64, equity []models.EquityPoint, trades []models.SimTrade, tradeReturns []float64) models.BacktestMetrics {
	m := models.BacktestMetrics{
		InitialCapital: initialCapital,
		FinalValue:     finalValue,
		TotalReturn:    (finalValue - initialCapital) / initialCapital,
		CAGR:           cagr(initialCapital, finalValue, spanDays),
		SharpeRatio:    sharpe(dailyReturns(equity)),
		MaxDrawdown:    maxDrawdown(equity),
	}

	for _, tr := range trades {
		if tr.Side != models.SideSell {
			continue
		}
		m.TotalTrades++
		if tr.RealizedPnL > 0 {
			m.ProfitableTrades++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.ProfitableTrades) / float64(m.TotalTrades)
	}
	if len(tradeReturns) > 0 {
		m.AverageReturn = mean(tradeReturns)
	}
	return m
}

func cagr(initial, final, spanDays float64) float64 {
	if spanDays <= 0 || initial <= 0 || final <= 0 {
		return 0
	}
	return math.Pow(final/initial, 365.25/spanDays) - 1
}

func dailyReturns(equity []models.EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, equity[i].Value/prev-1)
	}
	return out
}

// sharpe annualizes mean daily return over its standard deviation; 0 when the
// return series is flat.
func sharpe(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mu := mean(returns)
	var variance float64
	for _, r := range returns {
		d := r - mu
		variance += d * d
	}
	variance /= float64(len(returns))
	if variance == 0 {
		return 0
	}
	return mu / math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown is the worst peak-to-trough loss, found with one running-maximum
// scan over the equity curve.
func maxDrawdown(equity []models.EquityPoint) float64 {
	var peak, worst float64
	for _, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if dd := (peak - p.Value) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
