package strategy

import (
	"errors"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicator"
)

func seriesOf(closes ...float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
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

func newTestEngine() *Engine {
	return NewEngine(NewDefaultRegistry(), indicator.NewEngine(), nil)
}

func TestEvaluateUnknownStrategy(t *testing.T) {
	e := newTestEngine()
	_, err := e.Evaluate("AAPL", "nope", seriesOf(rising(300, 100, 1)...))
	var unknown *models.UnknownStrategyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStrategyError, got %v", err)
	}
}

func TestEvaluateEmptySeries(t *testing.T) {
	e := newTestEngine()
	_, err := e.Evaluate("AAPL", KeyMomentum, nil)
	var empty *models.DateRangeEmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected DateRangeEmptyError, got %v", err)
	}
}

func TestTrendFollowingBuyInUptrend(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(260, 100, 0.5)...)

	sig, err := e.Evaluate("AAPL", KeyTrendFollowing, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("action = %s, want buy", sig.Action)
	}
	if sig.Ticker != "AAPL" {
		t.Errorf("ticker = %q", sig.Ticker)
	}
}

func TestTrendFollowingSellInDowntrend(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(260, 250, -0.5)...)

	sig, err := e.Evaluate("AAPL", KeyTrendFollowing, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("action = %s, want sell", sig.Action)
	}
}

func TestTrendFollowingDegradesOnShortHistory(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(100, 100, 1)...)

	def, err := e.Registry().Get(KeyTrendFollowing)
	if err != nil {
		t.Fatal(err)
	}
	ev := e.Prepare(def, series)
	if _, failed := ev.Failed["SMA_200"]; !failed {
		t.Fatalf("expected SMA_200 in Failed, got %v", ev.Failed)
	}
	var short *models.InsufficientDataError
	if !errors.As(ev.Failed["SMA_200"], &short) {
		t.Errorf("expected InsufficientDataError, got %v", ev.Failed["SMA_200"])
	}

	sig := e.SignalAt("AAPL", ev, series, len(series)-1)
	if sig.Action != models.ActionHold {
		t.Errorf("degraded action = %s, want hold", sig.Action)
	}
}

// A steady uptrend with no crossovers: every indicator holds, so the
// consolidated signal is a hold with full agreement.
func TestHoldWithFullAgreement(t *testing.T) {
	e := newTestEngine()
	e.Registry().Register(models.StrategyDefinition{
		Key:  "steady_trend",
		Name: "Steady Trend",
		Indicators: []models.IndicatorConfig{
			{Type: models.IndicatorSMA, Window: 20},
			{Type: models.IndicatorEMA, Window: 12},
		},
		RebalanceFrequency: models.RebalanceDaily,
	})
	series := seriesOf(rising(60, 100, 1)...)

	sig, err := e.Evaluate("AAPL", "steady_trend", series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionHold {
		t.Fatalf("action = %s, want hold", sig.Action)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", sig.Confidence)
	}
	if sig.Strength != 0 {
		t.Errorf("hold strength = %v, want 0", sig.Strength)
	}
	if !sig.Timestamp.Equal(series[len(series)-1].Date) {
		t.Errorf("timestamp = %v, want last bar date %v", sig.Timestamp, series[len(series)-1].Date)
	}
}

func TestMeanReversionBuysOversold(t *testing.T) {
	e := newTestEngine()
	closes := append(constant(25, 100), 96, 92, 88, 84, 80)
	series := seriesOf(closes...)

	sig, err := e.Evaluate("AAPL", KeyMeanReversion, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("action = %s, want buy", sig.Action)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 (RSI and bands both oversold)", sig.Confidence)
	}
	if sig.Strength <= 0 {
		t.Errorf("strength = %v, want > 0", sig.Strength)
	}
}

func TestMeanReversionSellsOverbought(t *testing.T) {
	e := newTestEngine()
	closes := append(constant(25, 100), 104, 108, 112, 116, 120)
	series := seriesOf(closes...)

	sig, err := e.Evaluate("AAPL", KeyMeanReversion, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("action = %s, want sell", sig.Action)
	}
}

func TestMomentumSellsOnWeakRSI(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(60, 200, -1)...)

	sig, err := e.Evaluate("AAPL", KeyMomentum, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("action = %s, want sell", sig.Action)
	}
}

func TestMomentumHoldsWithoutCross(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(60, 100, 1)...)

	sig, err := e.Evaluate("AAPL", KeyMomentum, series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionHold {
		t.Fatalf("action = %s, want hold (strong RSI but no fresh MACD cross)", sig.Action)
	}
}

func TestCustomStrategyUsesConsensus(t *testing.T) {
	e := newTestEngine()
	e.Registry().Register(models.StrategyDefinition{
		Key:  "custom_rsi",
		Name: "Custom RSI",
		Indicators: []models.IndicatorConfig{
			{Type: models.IndicatorRSI, Window: 14},
		},
		RebalanceFrequency: models.RebalanceDaily,
	})
	series := seriesOf(rising(40, 200, -1)...)

	sig, err := e.Evaluate("AAPL", "custom_rsi", series)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("action = %s, want buy via consensus (RSI oversold)", sig.Action)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", sig.Confidence)
	}
}

func TestAllIndicatorsFailedDefaultsConfidence(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(10, 100, 1)...)

	def, err := e.Registry().Get(KeyMomentum)
	if err != nil {
		t.Fatal(err)
	}
	ev := e.Prepare(def, series)
	if len(ev.Results) != 0 {
		t.Fatalf("expected no results on 10 bars, got %d", len(ev.Results))
	}
	if len(ev.Failed) != 2 {
		t.Fatalf("expected 2 failures, got %v", ev.Failed)
	}

	sig := e.SignalAt("AAPL", ev, series, len(series)-1)
	if sig.Action != models.ActionHold {
		t.Errorf("action = %s, want hold", sig.Action)
	}
	if sig.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5 default", sig.Confidence)
	}
}

func TestRequiredHistory(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		key  string
		want int
	}{
		{KeyTrendFollowing, 200},
		{KeyMeanReversion, 20},
		{KeyMomentum, 34},
		{KeyConservative, 50},
	}
	for _, tt := range tests {
		def, err := e.Registry().Get(tt.key)
		if err != nil {
			t.Fatal(err)
		}
		got, err := e.RequiredHistory(def)
		if err != nil {
			t.Fatalf("%s: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("%s: RequiredHistory = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := newTestEngine()
	series := seriesOf(rising(260, 100, 0.5)...)

	first, err := e.Evaluate("AAPL", KeyTrendFollowing, series)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Evaluate("AAPL", KeyTrendFollowing, series)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("evaluations differ:\n%+v\n%+v", first, second)
	}
}
