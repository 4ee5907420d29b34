package indicator

import "TradePulse/internal/domain/models"

type emaFamily struct{}

func (emaFamily) requiredWindow(cfg models.IndicatorConfig) int { return cfg.Window }

// compute produces a full-length EMA seeded with the first close; there is no
// warm-up gap, so signals compare price and EMA at the same index.
func (emaFamily) compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	closes := series.Closes()
	values := emaSeries(closes, cfg.Window, cfg.Alpha)

	signals := make([]models.BarSignal, len(values))
	signals[0] = models.BarSignal{Action: models.ActionHold}
	for i := 1; i < len(values); i++ {
		signals[i] = crossSignal(closes[i-1], values[i-1], closes[i], values[i])
	}

	return models.IndicatorResult{
		Type:    cfg.Type,
		Params:  cfg,
		Offset:  0,
		Values:  values,
		Signals: signals,
	}, nil
}
