package strategy

import (
	"errors"
	"strings"
	"testing"

	"TradePulse/internal/domain/models"
)

func TestRecommendProfileTable(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name      string
		horizon   float64
		risk      models.RiskTolerance
		wantKey   string
		wantScore float64
		wantFreq  models.RebalanceFrequency
	}{
		{"short/low", 0.5, models.RiskLow, KeyConservative, 0.8, models.RebalanceMonthly},
		{"short/medium", 1, models.RiskMedium, KeyMeanReversion, 0.7, models.RebalanceDaily},
		{"short/high", 0.5, models.RiskHigh, KeyMomentum, 0.6, models.RebalanceDaily},
		{"medium/low", 1.5, models.RiskLow, KeyConservative, 0.7, models.RebalanceMonthly},
		{"medium/medium", 2, models.RiskMedium, KeyTrendFollowing, 0.7, models.RebalanceWeekly},
		{"medium/high", 1.5, models.RiskHigh, KeyMomentum, 0.7, models.RebalanceDaily},
		{"long/low", 5, models.RiskLow, KeyTrendFollowing, 0.8, models.RebalanceWeekly},
		{"long/medium", 10, models.RiskMedium, KeyTrendFollowing, 0.9, models.RebalanceWeekly},
		{"long/high", 3, models.RiskHigh, KeyMomentum, 0.8, models.RebalanceDaily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := e.Recommend(tt.horizon, tt.risk, 50_000)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if rec.StrategyKey != tt.wantKey {
				t.Errorf("strategy = %s, want %s", rec.StrategyKey, tt.wantKey)
			}
			if rec.Confidence != tt.wantScore {
				t.Errorf("confidence = %v, want %v", rec.Confidence, tt.wantScore)
			}
			if rec.RebalanceFrequency != tt.wantFreq {
				t.Errorf("frequency = %s, want %s", rec.RebalanceFrequency, tt.wantFreq)
			}
			if rec.Reasoning == "" {
				t.Error("empty reasoning")
			}
		})
	}
}

func TestRecommendInvalidHorizon(t *testing.T) {
	e := newTestEngine()
	_, err := e.Recommend(0, models.RiskMedium, 50_000)
	var invalid *models.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestRecommendUnknownRisk(t *testing.T) {
	e := newTestEngine()
	_, err := e.Recommend(5, models.RiskTolerance("reckless"), 50_000)
	var invalid *models.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestRecommendSmallPortfolioReasoning(t *testing.T) {
	e := newTestEngine()
	small, err := e.Recommend(5, models.RiskLow, 5_000)
	if err != nil {
		t.Fatal(err)
	}
	large, err := e.Recommend(5, models.RiskLow, 500_000)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(small.Reasoning, "smaller portfolio") {
		t.Errorf("small-portfolio reasoning missing fragment: %q", small.Reasoning)
	}
	if strings.Contains(large.Reasoning, "smaller portfolio") {
		t.Errorf("large-portfolio reasoning should not mention portfolio size: %q", large.Reasoning)
	}
	if small.StrategyKey != large.StrategyKey {
		t.Errorf("portfolio size changed the strategy: %s vs %s", small.StrategyKey, large.StrategyKey)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	e := newTestEngine()
	first, err := e.Recommend(2, models.RiskHigh, 50_000)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Recommend(2, models.RiskHigh, 50_000)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("recommendations differ:\n%+v\n%+v", first, second)
	}
}
