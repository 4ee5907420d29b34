package indicator

import "TradePulse/internal/domain/models"

// macdHistogramCap normalizes histogram magnitude into signal strength; a
// histogram of 2.0 price units saturates at 1.0.
const macdHistogramCap = 2.0

type macdFamily struct{}

// requiredWindow covers the slow EMA warm-up plus the signal-line warm-up.
func (macdFamily) requiredWindow(cfg models.IndicatorConfig) int {
	return cfg.SlowPeriod + cfg.SignalPeriod - 1
}

// compute derives the MACD line from two close EMAs aligned to the same
// calendar index, then smooths it into the signal line. The histogram and
// the per-bar signals start signalPeriod-1 bars after the MACD line.
func (macdFamily) compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	closes := series.Closes()
	fast := emaSeries(closes, cfg.FastPeriod, 0)
	slow := emaSeries(closes, cfg.SlowPeriod, 0)

	// Both EMAs are full length; the MACD line starts once the slow EMA has
	// a full window behind it.
	start := cfg.SlowPeriod - 1
	macdLine := make([]float64, len(closes)-start)
	for i := range macdLine {
		macdLine[i] = fast[i+start] - slow[i+start]
	}

	signalFull := emaSeries(macdLine, cfg.SignalPeriod, 0)
	sigOffset := cfg.SignalPeriod - 1
	signalLine := make([]float64, len(macdLine)-sigOffset)
	histogram := make([]float64, len(signalLine))
	for i := range signalLine {
		signalLine[i] = signalFull[i+sigOffset]
		histogram[i] = macdLine[i+sigOffset] - signalLine[i]
	}

	signals := make([]models.BarSignal, len(histogram))
	signals[0] = models.BarSignal{Action: models.ActionHold}
	for i := 1; i < len(histogram); i++ {
		switch {
		case histogram[i-1] <= 0 && histogram[i] > 0:
			signals[i] = models.BarSignal{
				Action:   models.ActionBuy,
				Strength: clamp01(histogram[i] / macdHistogramCap),
			}
		case histogram[i-1] >= 0 && histogram[i] < 0:
			signals[i] = models.BarSignal{
				Action:   models.ActionSell,
				Strength: clamp01(-histogram[i] / macdHistogramCap),
			}
		default:
			signals[i] = models.BarSignal{Action: models.ActionHold}
		}
	}

	return models.IndicatorResult{
		Type:   cfg.Type,
		Params: cfg,
		Offset: start,
		MACD: &models.MACDSeries{
			MACDLine:   macdLine,
			SignalLine: signalLine,
			Histogram:  histogram,
		},
		Signals: signals,
	}, nil
}
