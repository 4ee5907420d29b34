package strategy

import (
	"errors"
	"sort"
	"testing"

	"TradePulse/internal/domain/models"
)

func TestDefaultRegistryBuiltins(t *testing.T) {
	r := NewDefaultRegistry()
	defs := r.List()
	if len(defs) != 4 {
		t.Fatalf("expected 4 built-in strategies, got %d", len(defs))
	}
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, d.Key)
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("List not sorted by key: %v", keys)
	}
	for _, want := range []string{KeyTrendFollowing, KeyMeanReversion, KeyMomentum, KeyConservative} {
		if _, err := r.Get(want); err != nil {
			t.Errorf("built-in %q missing: %v", want, err)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Get("nope")
	var unknown *models.UnknownStrategyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStrategyError, got %v", err)
	}
	if unknown.Key != "nope" {
		t.Errorf("error key = %q, want %q", unknown.Key, "nope")
	}
}

func TestRegistryRegisterCustom(t *testing.T) {
	r := NewDefaultRegistry()
	custom := models.StrategyDefinition{
		Key:  "custom_rsi",
		Name: "Custom RSI",
		Indicators: []models.IndicatorConfig{
			{Type: models.IndicatorRSI, Window: 14},
		},
		RebalanceFrequency: models.RebalanceDaily,
	}
	r.Register(custom)

	got, err := r.Get("custom_rsi")
	if err != nil {
		t.Fatalf("Get after Register: %v", err)
	}
	if got.Name != "Custom RSI" {
		t.Errorf("Name = %q, want %q", got.Name, "Custom RSI")
	}
	if len(r.List()) != 5 {
		t.Errorf("expected 5 strategies after Register, got %d", len(r.List()))
	}
}

func TestBuiltinDefinitionsWellFormed(t *testing.T) {
	for _, def := range BuiltinStrategies() {
		if def.Key == "" || def.Name == "" {
			t.Errorf("definition missing key or name: %+v", def)
		}
		if len(def.Indicators) == 0 {
			t.Errorf("%s: no indicators", def.Key)
		}
		if def.EntryRule == "" || def.ExitRule == "" {
			t.Errorf("%s: missing entry or exit rule text", def.Key)
		}
		switch def.RebalanceFrequency {
		case models.RebalanceDaily, models.RebalanceWeekly, models.RebalanceMonthly:
		default:
			t.Errorf("%s: bad rebalance frequency %q", def.Key, def.RebalanceFrequency)
		}
	}
}
