package strategy

import (
	"fmt"

	"TradePulse/internal/domain/models"
)

// recommendation lookup cell.
type profileMatch struct {
	key        string
	confidence float64
}

// Horizon buckets in years: short is up to one, medium up to two, long beyond.
const (
	shortHorizonYears  = 1.0
	mediumHorizonYears = 2.0
)

var profileTable = map[string]map[models.RiskTolerance]profileMatch{
	"short": {
		models.RiskLow:    {KeyConservative, 0.8},
		models.RiskMedium: {KeyMeanReversion, 0.7},
		models.RiskHigh:   {KeyMomentum, 0.6},
	},
	"medium": {
		models.RiskLow:    {KeyConservative, 0.7},
		models.RiskMedium: {KeyTrendFollowing, 0.7},
		models.RiskHigh:   {KeyMomentum, 0.7},
	},
	"long": {
		models.RiskLow:    {KeyTrendFollowing, 0.8},
		models.RiskMedium: {KeyTrendFollowing, 0.9},
		models.RiskHigh:   {KeyMomentum, 0.8},
	},
}

var horizonFragments = map[string]string{
	"short":  "With a horizon under a year, capital preservation and quick mean-reverting entries matter more than riding long trends.",
	"medium": "A one-to-two year horizon leaves room to hold positions through pullbacks while still reacting to regime changes.",
	"long":   "A multi-year horizon favors staying invested through noise and letting established trends compound.",
}

var riskFragments = map[models.RiskTolerance]string{
	models.RiskLow:    "Low risk tolerance calls for strict entry filters and early exits.",
	models.RiskMedium: "Medium risk tolerance allows standard entry rules with balanced exposure.",
	models.RiskHigh:   "High risk tolerance supports aggressive momentum entries and wider drawdowns.",
}

var strategyRationales = map[string]string{
	KeyTrendFollowing: "Trend Following holds positions only while the moving-average stack confirms the up-trend.",
	KeyMeanReversion:  "Mean Reversion harvests short swings around the rolling mean with tight oversold/overbought gates.",
	KeyMomentum:       "Momentum chases confirmed MACD breakouts for the largest, fastest moves.",
	KeyConservative:   "Conservative enters only confirmed trends at unstretched prices and exits at the first warning.",
}

func horizonBucket(years float64) string {
	switch {
	case years <= shortHorizonYears:
		return "short"
	case years <= mediumHorizonYears:
		return "medium"
	default:
		return "long"
	}
}

// Recommend maps an investor profile to one of the built-in strategies with a
// fixed confidence. The lookup is a deterministic (horizon bucket, risk) table;
// portfolioSize only flavors the reasoning text.
func (e *Engine) Recommend(horizonYears float64, risk models.RiskTolerance, portfolioSize float64) (models.Recommendation, error) {
	if horizonYears <= 0 {
		return models.Recommendation{}, &models.InvalidParameterError{
			Param:  "horizonYears",
			Reason: "must be positive",
		}
	}
	bucket := horizonBucket(horizonYears)
	match, ok := profileTable[bucket][risk]
	if !ok {
		return models.Recommendation{}, &models.InvalidParameterError{
			Param:  "riskTolerance",
			Reason: fmt.Sprintf("unknown value %q", risk),
		}
	}

	def, err := e.registry.Get(match.key)
	if err != nil {
		return models.Recommendation{}, err
	}

	reasoning := horizonFragments[bucket] + " " + riskFragments[risk] + " " + strategyRationales[match.key]
	if portfolioSize > 0 && portfolioSize < smallPortfolioThreshold {
		reasoning += " A smaller portfolio also benefits from the lower turnover of this approach."
	}

	return models.Recommendation{
		StrategyKey:        def.Key,
		StrategyName:       def.Name,
		Confidence:         match.confidence,
		RebalanceFrequency: def.RebalanceFrequency,
		Reasoning:          reasoning,
	}, nil
}

const smallPortfolioThreshold = 10_000
