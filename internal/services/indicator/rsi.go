package indicator

import "TradePulse/internal/domain/models"

// rsiStrengthSpan is the RSI distance past a threshold at which signal
// strength saturates at 1.0.
const rsiStrengthSpan = 10.0

type rsiFamily struct{}

// requiredWindow is window+1: the seed average needs window deltas.
func (rsiFamily) requiredWindow(cfg models.IndicatorConfig) int { return cfg.Window + 1 }

func (rsiFamily) compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	closes := series.Closes()
	w := cfg.Window

	// Seed averages from the simple mean of the first w gains/losses.
	var avgGain, avgLoss float64
	for i := 1; i <= w; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(w)
	avgLoss /= float64(w)

	values := make([]float64, 0, len(closes)-w)
	values = append(values, rsiValue(avgGain, avgLoss))

	// Wilder smoothing for subsequent bars.
	p := float64(w)
	for i := w + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		values = append(values, rsiValue(avgGain, avgLoss))
	}

	signals := make([]models.BarSignal, len(values))
	for j, rsi := range values {
		signals[j] = rsiSignal(rsi, cfg.Overbought, cfg.Oversold)
	}

	return models.IndicatorResult{
		Type:    cfg.Type,
		Params:  cfg,
		Offset:  w,
		Values:  values,
		Signals: signals,
	}, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// rsiSignal scales strength linearly with the distance past the threshold.
func rsiSignal(rsi, overbought, oversold float64) models.BarSignal {
	switch {
	case rsi < oversold:
		return models.BarSignal{
			Action:   models.ActionBuy,
			Strength: clamp01((oversold - rsi) / rsiStrengthSpan),
		}
	case rsi > overbought:
		return models.BarSignal{
			Action:   models.ActionSell,
			Strength: clamp01((rsi - overbought) / rsiStrengthSpan),
		}
	default:
		return models.BarSignal{Action: models.ActionHold}
	}
}
