// Package indicator computes technical indicator values and per-bar signals
// over daily price series.
//
// Each indicator family implements the family interface and is selected
// through a factory keyed by the IndicatorType enum. Compute is a pure
// function: it never mutates the input series and returns a fresh
// IndicatorResult on every call.
package indicator

import (
	"TradePulse/internal/domain/models"
)

// family is implemented once per indicator type.
type family interface {
	// requiredWindow returns the minimum series length for a normalized config.
	requiredWindow(cfg models.IndicatorConfig) int

	// compute runs the indicator over the series. The config is already
	// normalized and validated.
	compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error)
}

var families = map[models.IndicatorType]family{
	models.IndicatorSMA:       smaFamily{},
	models.IndicatorEMA:       emaFamily{},
	models.IndicatorRSI:       rsiFamily{},
	models.IndicatorMACD:      macdFamily{},
	models.IndicatorBollinger: bollingerFamily{},
}

// Engine dispatches indicator computations. Stateless and safe for
// concurrent use.
type Engine struct{}

// NewEngine creates an indicator engine.
func NewEngine() *Engine { return &Engine{} }

// Compute runs one indicator over the series and returns values plus per-bar
// signals. Fails with InsufficientDataError when the series is shorter than
// the indicator's required window, and with InvalidParameterError or
// UnknownIndicatorTypeError on a bad config.
func (e *Engine) Compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error) {
	norm, err := Normalize(cfg)
	if err != nil {
		return models.IndicatorResult{}, err
	}
	f := families[norm.Type]
	if need := f.requiredWindow(norm); len(series) < need {
		return models.IndicatorResult{}, &models.InsufficientDataError{
			Type: norm.Type,
			Need: need,
			Have: len(series),
		}
	}
	return f.compute(series, norm)
}

// RequiredWindow returns the minimum number of bars the config needs.
func (e *Engine) RequiredWindow(cfg models.IndicatorConfig) (int, error) {
	norm, err := Normalize(cfg)
	if err != nil {
		return 0, err
	}
	return families[norm.Type].requiredWindow(norm), nil
}

// Normalize fills family defaults into zero fields and validates the result.
func Normalize(cfg models.IndicatorConfig) (models.IndicatorConfig, error) {
	if !models.IsValidIndicatorType(cfg.Type) {
		return cfg, &models.UnknownIndicatorTypeError{Type: string(cfg.Type)}
	}

	switch cfg.Type {
	case models.IndicatorSMA:
		if cfg.Window == 0 {
			cfg.Window = 20
		}
	case models.IndicatorEMA:
		if cfg.Window == 0 {
			cfg.Window = 12
		}
	case models.IndicatorRSI:
		if cfg.Window == 0 {
			cfg.Window = 14
		}
		if cfg.Overbought == 0 {
			cfg.Overbought = 70
		}
		if cfg.Oversold == 0 {
			cfg.Oversold = 30
		}
	case models.IndicatorMACD:
		if cfg.FastPeriod == 0 {
			cfg.FastPeriod = 12
		}
		if cfg.SlowPeriod == 0 {
			cfg.SlowPeriod = 26
		}
		if cfg.SignalPeriod == 0 {
			cfg.SignalPeriod = 9
		}
	case models.IndicatorBollinger:
		if cfg.Window == 0 {
			cfg.Window = 20
		}
		if cfg.Multiplier == 0 {
			cfg.Multiplier = 2
		}
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg models.IndicatorConfig) error {
	switch cfg.Type {
	case models.IndicatorSMA, models.IndicatorEMA:
		if cfg.Window <= 0 {
			return &models.InvalidParameterError{Param: "window", Reason: "must be positive"}
		}
	case models.IndicatorRSI:
		if cfg.Window <= 0 {
			return &models.InvalidParameterError{Param: "window", Reason: "must be positive"}
		}
		if cfg.Oversold <= 0 || cfg.Overbought >= 100 || cfg.Oversold >= cfg.Overbought {
			return &models.InvalidParameterError{
				Param:  "thresholds",
				Reason: "need 0 < oversold < overbought < 100",
			}
		}
	case models.IndicatorMACD:
		if cfg.FastPeriod <= 0 || cfg.SlowPeriod <= 0 || cfg.SignalPeriod <= 0 {
			return &models.InvalidParameterError{Param: "periods", Reason: "must be positive"}
		}
		if cfg.FastPeriod >= cfg.SlowPeriod {
			return &models.InvalidParameterError{
				Param:  "fastPeriod",
				Reason: "must be smaller than slowPeriod",
			}
		}
	case models.IndicatorBollinger:
		if cfg.Window <= 1 {
			return &models.InvalidParameterError{Param: "window", Reason: "must be at least 2"}
		}
		if cfg.Multiplier <= 0 {
			return &models.InvalidParameterError{Param: "multiplier", Reason: "must be positive"}
		}
	}
	return nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
