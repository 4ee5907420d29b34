package models

import "fmt"

// IndicatorType identifies an indicator family.
type IndicatorType string

const (
	IndicatorSMA       IndicatorType = "SMA"
	IndicatorEMA       IndicatorType = "EMA"
	IndicatorRSI       IndicatorType = "RSI"
	IndicatorMACD      IndicatorType = "MACD"
	IndicatorBollinger IndicatorType = "BOLLINGER"
)

// IsValidIndicatorType returns true for a supported indicator family.
func IsValidIndicatorType(t IndicatorType) bool {
	switch t {
	case IndicatorSMA, IndicatorEMA, IndicatorRSI, IndicatorMACD, IndicatorBollinger:
		return true
	default:
		return false
	}
}

// SignalAction is a per-bar trading decision.
type SignalAction string

const (
	ActionBuy  SignalAction = "buy"
	ActionHold SignalAction = "hold"
	ActionSell SignalAction = "sell"
)

// IndicatorConfig is an immutable indicator parameterization. Zero fields fall
// back to the family defaults (SMA 20, EMA 12, RSI 14/70/30, MACD 12/26/9,
// Bollinger 20/2).
type IndicatorConfig struct {
	Type IndicatorType `json:"type"`

	// Window is the lookback period for SMA, EMA, RSI and Bollinger.
	Window int `json:"window,omitempty"`

	// Alpha overrides the EMA smoothing factor 2/(window+1) when non-zero.
	Alpha float64 `json:"alpha,omitempty"`

	// RSI thresholds.
	Overbought float64 `json:"overbought,omitempty"`
	Oversold   float64 `json:"oversold,omitempty"`

	// MACD periods.
	FastPeriod   int `json:"fastPeriod,omitempty"`
	SlowPeriod   int `json:"slowPeriod,omitempty"`
	SignalPeriod int `json:"signalPeriod,omitempty"`

	// Bollinger standard-deviation multiplier.
	Multiplier float64 `json:"multiplier,omitempty"`
}

// Key returns a stable identifier for a parameterization, e.g. "SMA_50" or
// "MACD_12_26_9". Used to address individual indicators inside a strategy.
func (c IndicatorConfig) Key() string {
	switch c.Type {
	case IndicatorMACD:
		return fmt.Sprintf("%s_%d_%d_%d", c.Type, c.FastPeriod, c.SlowPeriod, c.SignalPeriod)
	default:
		return fmt.Sprintf("%s_%d", c.Type, c.Window)
	}
}

// BarSignal is a per-bar indicator decision with a strength in [0,1].
type BarSignal struct {
	Action   SignalAction `json:"signal"`
	Strength float64      `json:"strength"`
}

// MACDSeries holds the three MACD output lines. SignalLine and Histogram are
// shorter than MACDLine by signalPeriod-1 bars.
type MACDSeries struct {
	MACDLine   []float64 `json:"macdLine"`
	SignalLine []float64 `json:"signalLine"`
	Histogram  []float64 `json:"histogram"`
}

// BollingerSeries holds the three Bollinger bands, all the same length.
type BollingerSeries struct {
	Upper  []float64 `json:"upper"`
	Middle []float64 `json:"middle"`
	Lower  []float64 `json:"lower"`
}

// IndicatorResult is the immutable output of one Compute call.
//
// Offset maps output index 0 back to the source series: Values[i] (or
// Signals[i]) belongs to the bar at series[i+Offset]. Signals is always
// aligned to the latest-starting output line (Histogram for MACD).
type IndicatorResult struct {
	Type    IndicatorType    `json:"type"`
	Params  IndicatorConfig  `json:"params"`
	Offset  int              `json:"offset"`
	Values  []float64        `json:"values,omitempty"`
	MACD    *MACDSeries      `json:"macd,omitempty"`
	Bands   *BollingerSeries `json:"bands,omitempty"`
	Signals []BarSignal      `json:"signals"`
}

// LastValue returns the most recent indicator value, or 0 for an empty result.
func (r *IndicatorResult) LastValue() float64 {
	if len(r.Values) > 0 {
		return r.Values[len(r.Values)-1]
	}
	if r.MACD != nil && len(r.MACD.MACDLine) > 0 {
		return r.MACD.MACDLine[len(r.MACD.MACDLine)-1]
	}
	if r.Bands != nil && len(r.Bands.Middle) > 0 {
		return r.Bands.Middle[len(r.Bands.Middle)-1]
	}
	return 0
}

// SignalAt returns the per-bar signal for source series index i, or a hold
// when i falls inside the warm-up period.
func (r *IndicatorResult) SignalAt(i int) BarSignal {
	j := i - r.Offset
	if r.MACD != nil {
		// Signals align to the histogram, which starts signalPeriod-1 bars
		// after the MACD line.
		j -= len(r.MACD.MACDLine) - len(r.MACD.Histogram)
	}
	if j < 0 || j >= len(r.Signals) {
		return BarSignal{Action: ActionHold}
	}
	return r.Signals[j]
}
