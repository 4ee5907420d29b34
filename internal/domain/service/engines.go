package service

import (
	"TradePulse/internal/domain/models"
)

// IndicatorComputer computes one indicator over a price series.
type IndicatorComputer interface {
	Compute(series models.PriceSeries, cfg models.IndicatorConfig) (models.IndicatorResult, error)
	RequiredWindow(cfg models.IndicatorConfig) (int, error)
}

// SignalEvaluator evaluates a named strategy at the latest bar of a series.
type SignalEvaluator interface {
	Evaluate(ticker, strategyKey string, series models.PriceSeries) (models.Signal, error)
}

// StrategyRecommender maps an investor profile to a built-in strategy.
type StrategyRecommender interface {
	Recommend(horizonYears float64, risk models.RiskTolerance, portfolioSize float64) (models.Recommendation, error)
}

// StrategyService is the full strategy surface the use case layer consumes.
type StrategyService interface {
	SignalEvaluator
	StrategyRecommender
	ListStrategies() []models.StrategyDefinition
}
