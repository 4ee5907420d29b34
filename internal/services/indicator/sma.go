package indicator

import "TradePulse/internal/domain/models"

// maCrossScale converts the relative close/average gap on a crossover bar
// into a signal strength. A 5% gap saturates at 1.0.
const maCrossScale = 20

type smaFamily struct{}

func (smaFamily) requiredWindow(cfg models.IndicatorConfig) int { return cfg.Window }

func (smaFamily) compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	closes := series.Closes()
	w := cfg.Window
	values := smaSeries(closes, w)

	signals := make([]models.BarSignal, len(values))
	signals[0] = models.BarSignal{Action: models.ActionHold}
	for j := 1; j < len(values); j++ {
		i := j + w - 1 // source index
		signals[j] = crossSignal(closes[i-1], values[j-1], closes[i], values[j])
	}

	return models.IndicatorResult{
		Type:    cfg.Type,
		Params:  cfg,
		Offset:  w - 1,
		Values:  values,
		Signals: signals,
	}, nil
}

// crossSignal detects a price/average crossover between two consecutive bars.
func crossSignal(prevClose, prevAvg, close, avg float64) models.BarSignal {
	switch {
	case prevClose <= prevAvg && close > avg:
		return models.BarSignal{Action: models.ActionBuy, Strength: crossStrength(close, avg)}
	case prevClose >= prevAvg && close < avg:
		return models.BarSignal{Action: models.ActionSell, Strength: crossStrength(close, avg)}
	default:
		return models.BarSignal{Action: models.ActionHold}
	}
}

func crossStrength(close, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	gap := close/avg - 1
	if gap < 0 {
		gap = -gap
	}
	return clamp01(gap * maCrossScale)
}
