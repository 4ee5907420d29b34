package indicator

import "TradePulse/internal/domain/models"

type bollingerFamily struct{}

func (bollingerFamily) requiredWindow(cfg models.IndicatorConfig) int { return cfg.Window }

func (bollingerFamily) compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	closes := series.Closes()
	w := cfg.Window

	middle := smaSeries(closes, w)
	std := rollingStd(closes, w, middle)

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for j := range middle {
		upper[j] = middle[j] + cfg.Multiplier*std[j]
		lower[j] = middle[j] - cfg.Multiplier*std[j]
	}

	signals := make([]models.BarSignal, len(middle))
	for j := range middle {
		close := closes[j+w-1]
		switch {
		case close <= lower[j]:
			signals[j] = models.BarSignal{
				Action:   models.ActionBuy,
				Strength: bandStrength(lower[j]-close, middle[j]-lower[j]),
			}
		case close >= upper[j]:
			signals[j] = models.BarSignal{
				Action:   models.ActionSell,
				Strength: bandStrength(close-upper[j], upper[j]-middle[j]),
			}
		default:
			signals[j] = models.BarSignal{Action: models.ActionHold}
		}
	}

	return models.IndicatorResult{
		Type:   cfg.Type,
		Params: cfg,
		Offset: w - 1,
		Bands: &models.BollingerSeries{
			Upper:  upper,
			Middle: middle,
			Lower:  lower,
		},
		Signals: signals,
	}, nil
}

// bandStrength scales penetration depth by the band half-width.
func bandStrength(depth, halfWidth float64) float64 {
	if halfWidth <= 0 {
		return 0
	}
	return clamp01(depth / halfWidth)
}
