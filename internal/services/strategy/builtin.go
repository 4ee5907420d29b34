package strategy

import "TradePulse/internal/domain/models"

// Built-in strategy keys.
const (
	KeyTrendFollowing = "trend_following"
	KeyMeanReversion  = "mean_reversion"
	KeyMomentum       = "momentum"
	KeyConservative   = "conservative"
)

// Rule thresholds used by the built-in evaluators.
const (
	momentumRSIPivot        = 50
	conservativeRSIBuyMax   = 60
	conservativeRSISellMin  = 80
	meanReversionRSIBuyMax  = 30
	meanReversionRSISellMin = 70
)

// BuiltinStrategies returns the four shipped strategies as data. The rule
// evaluator for each is selected by Key in rules.go.
func BuiltinStrategies() []models.StrategyDefinition {
	return []models.StrategyDefinition{
		{
			Key:         KeyTrendFollowing,
			Name:        "Trend Following",
			Description: "Rides established up-trends using a fast/slow moving-average stack.",
			Indicators: []models.IndicatorConfig{
				{Type: models.IndicatorSMA, Window: 50},
				{Type: models.IndicatorSMA, Window: 200},
			},
			EntryRule:          "price above SMA50 and SMA50 above SMA200",
			ExitRule:           "price below SMA50 or SMA50 below SMA200",
			RebalanceFrequency: models.RebalanceWeekly,
		},
		{
			Key:         KeyMeanReversion,
			Name:        "Mean Reversion",
			Description: "Buys oversold dips and sells overbought spikes around a rolling mean.",
			Indicators: []models.IndicatorConfig{
				{Type: models.IndicatorRSI, Window: 14, Overbought: 70, Oversold: 30},
				{Type: models.IndicatorBollinger, Window: 20, Multiplier: 2},
			},
			EntryRule:          "RSI below 30 or price below the lower Bollinger band",
			ExitRule:           "RSI above 70 or price above the upper Bollinger band",
			RebalanceFrequency: models.RebalanceDaily,
		},
		{
			Key:         KeyMomentum,
			Name:        "Momentum",
			Description: "Follows fresh MACD momentum confirmed by RSI.",
			Indicators: []models.IndicatorConfig{
				{Type: models.IndicatorMACD, FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
				{Type: models.IndicatorRSI, Window: 14, Overbought: 70, Oversold: 30},
			},
			EntryRule:          "MACD bullish cross with RSI above 50",
			ExitRule:           "MACD bearish cross or RSI below 50",
			RebalanceFrequency: models.RebalanceDaily,
		},
		{
			Key:         KeyConservative,
			Name:        "Conservative",
			Description: "Enters only confirmed up-trends at unstretched prices, exits early.",
			Indicators: []models.IndicatorConfig{
				{Type: models.IndicatorSMA, Window: 50},
				{Type: models.IndicatorRSI, Window: 14, Overbought: 70, Oversold: 30},
				{Type: models.IndicatorBollinger, Window: 20, Multiplier: 2},
			},
			EntryRule:          "price above SMA50, RSI below 60, price below the middle Bollinger band",
			ExitRule:           "price below SMA50, or RSI above 80, or price above the upper band",
			RebalanceFrequency: models.RebalanceMonthly,
		},
	}
}
