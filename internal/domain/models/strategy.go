package models

// RebalanceFrequency is how often a strategy recommends re-evaluating.
type RebalanceFrequency string

const (
	RebalanceDaily   RebalanceFrequency = "daily"
	RebalanceWeekly  RebalanceFrequency = "weekly"
	RebalanceMonthly RebalanceFrequency = "monthly"
)

// StrategyDefinition bundles indicator configurations with human-readable
// entry/exit rules. Strategies are configuration data, not code; the rule
// evaluator is selected by Key in the strategy engine.
type StrategyDefinition struct {
	Key                string             `json:"key"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	Indicators         []IndicatorConfig  `json:"indicators"`
	EntryRule          string             `json:"entryRule"`
	ExitRule           string             `json:"exitRule"`
	RebalanceFrequency RebalanceFrequency `json:"rebalanceFrequency"`
}

// RiskTolerance buckets an investor's appetite for drawdowns.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Recommendation is the outcome of matching an investor profile to a strategy.
type Recommendation struct {
	StrategyKey        string             `json:"strategyKey"`
	StrategyName       string             `json:"strategyName"`
	Confidence         float64            `json:"confidence"`
	RebalanceFrequency RebalanceFrequency `json:"rebalanceFrequency"`
	Reasoning          string             `json:"reasoning"`
}
