package indicator

import (
	"errors"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
)

// seriesOf builds a daily series from close prices starting 2024-01-01.
func seriesOf(closes ...float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

func rising(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func constant(n int, c float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestComputeUnknownType(t *testing.T) {
	e := NewEngine()
	_, err := e.Compute(seriesOf(1, 2, 3), models.IndicatorConfig{Type: "VWAP"})
	var ut *models.UnknownIndicatorTypeError
	if !errors.As(err, &ut) {
		t.Fatalf("expected UnknownIndicatorTypeError, got %v", err)
	}
}

func TestComputeInsufficientData(t *testing.T) {
	e := NewEngine()
	_, err := e.Compute(seriesOf(rising(10, 100, 1)...), models.IndicatorConfig{
		Type:   models.IndicatorSMA,
		Window: 20,
	})
	var id *models.InsufficientDataError
	if !errors.As(err, &id) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if id.Need != 20 || id.Have != 10 {
		t.Fatalf("unexpected need/have: %d/%d", id.Need, id.Have)
	}
}

func TestComputeInvalidParams(t *testing.T) {
	e := NewEngine()
	cases := []models.IndicatorConfig{
		{Type: models.IndicatorSMA, Window: -1},
		{Type: models.IndicatorRSI, Window: 14, Overbought: 20, Oversold: 80},
		{Type: models.IndicatorMACD, FastPeriod: 26, SlowPeriod: 12},
		{Type: models.IndicatorBollinger, Window: 20, Multiplier: -2},
	}
	for _, cfg := range cases {
		_, err := e.Compute(seriesOf(rising(60, 100, 1)...), cfg)
		var ip *models.InvalidParameterError
		if !errors.As(err, &ip) {
			t.Fatalf("%s: expected InvalidParameterError, got %v", cfg.Type, err)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg, err := Normalize(models.IndicatorConfig{Type: models.IndicatorMACD})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.FastPeriod != 12 || cfg.SlowPeriod != 26 || cfg.SignalPeriod != 9 {
		t.Fatalf("unexpected MACD defaults: %+v", cfg)
	}

	cfg, err = Normalize(models.IndicatorConfig{Type: models.IndicatorRSI})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Window != 14 || cfg.Overbought != 70 || cfg.Oversold != 30 {
		t.Fatalf("unexpected RSI defaults: %+v", cfg)
	}
}

func TestRequiredWindow(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		cfg  models.IndicatorConfig
		want int
	}{
		{models.IndicatorConfig{Type: models.IndicatorSMA, Window: 20}, 20},
		{models.IndicatorConfig{Type: models.IndicatorEMA, Window: 12}, 12},
		{models.IndicatorConfig{Type: models.IndicatorRSI, Window: 14}, 15},
		{models.IndicatorConfig{Type: models.IndicatorMACD}, 34},
		{models.IndicatorConfig{Type: models.IndicatorBollinger, Window: 20}, 20},
	}
	for _, tt := range tests {
		got, err := e.RequiredWindow(tt.cfg)
		if err != nil {
			t.Fatalf("%s: %v", tt.cfg.Type, err)
		}
		if got != tt.want {
			t.Fatalf("%s: required window %d, want %d", tt.cfg.Type, got, tt.want)
		}
	}
}

// Compute must be referentially transparent: two identical calls yield
// identical results with no shared mutable state.
func TestComputeDeterministic(t *testing.T) {
	e := NewEngine()
	s := seriesOf(rising(60, 100, 0.5)...)
	cfg := models.IndicatorConfig{Type: models.IndicatorBollinger}

	a, err := e.Compute(s, cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b, err := e.Compute(s, cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for j := range a.Bands.Middle {
		if a.Bands.Middle[j] != b.Bands.Middle[j] || a.Bands.Upper[j] != b.Bands.Upper[j] {
			t.Fatalf("results differ at %d", j)
		}
	}
}
