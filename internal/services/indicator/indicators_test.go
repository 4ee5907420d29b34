package indicator

import (
	"math"
	"testing"

	"TradePulse/internal/domain/models"
)

const eps = 1e-9

func TestSMARisingSeries(t *testing.T) {
	e := NewEngine()
	// 25 bars, closes 100,101,...,124
	res, err := e.Compute(seriesOf(rising(25, 100, 1)...), models.IndicatorConfig{
		Type:   models.IndicatorSMA,
		Window: 20,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(res.Values) != 6 {
		t.Fatalf("expected 6 outputs, got %d", len(res.Values))
	}
	if res.Offset != 19 {
		t.Fatalf("expected offset 19, got %d", res.Offset)
	}
	// Mean of closes 100..119 and 105..124.
	if math.Abs(res.Values[0]-109.5) > eps {
		t.Fatalf("first SMA = %v, want 109.5", res.Values[0])
	}
	if math.Abs(res.Values[5]-114.5) > eps {
		t.Fatalf("last SMA = %v, want 114.5", res.Values[5])
	}
	if res.Signals[0].Action != models.ActionHold {
		t.Fatalf("first output must hold")
	}
}

func TestSMAConstantSeries(t *testing.T) {
	e := NewEngine()
	res, err := e.Compute(seriesOf(constant(40, 50)...), models.IndicatorConfig{
		Type:   models.IndicatorSMA,
		Window: 20,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for j, v := range res.Values {
		if math.Abs(v-50) > eps {
			t.Fatalf("SMA[%d] = %v, want 50", j, v)
		}
		if res.Signals[j].Action != models.ActionHold {
			t.Fatalf("constant series must hold at %d", j)
		}
	}
}

func TestEMASeedAndSecondBar(t *testing.T) {
	e := NewEngine()
	res, err := e.Compute(seriesOf(rising(25, 100, 1)...), models.IndicatorConfig{
		Type:   models.IndicatorEMA,
		Window: 12,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(res.Values) != 25 || res.Offset != 0 {
		t.Fatalf("EMA must cover the full series, got len=%d offset=%d", len(res.Values), res.Offset)
	}
	if res.Values[0] != 100 {
		t.Fatalf("EMA seed = %v, want 100", res.Values[0])
	}
	// alpha = 2/13; EMA[1] = 101*a + 100*(1-a) ~= 100.1538
	want := 100 + 2.0/13.0
	if math.Abs(res.Values[1]-want) > 1e-4 {
		t.Fatalf("EMA[1] = %v, want %v", res.Values[1], want)
	}
}

func TestEMAConvergesOnConstantSeries(t *testing.T) {
	e := NewEngine()
	closes := append(rising(5, 80, 5), constant(200, 100)...)
	res, err := e.Compute(seriesOf(closes...), models.IndicatorConfig{
		Type:   models.IndicatorEMA,
		Window: 12,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	last := res.Values[len(res.Values)-1]
	if math.Abs(last-100) > 1e-6 {
		t.Fatalf("EMA did not converge: %v", last)
	}
}

func TestEMAAlphaOverride(t *testing.T) {
	e := NewEngine()
	res, err := e.Compute(seriesOf(100, 110), models.IndicatorConfig{
		Type:   models.IndicatorEMA,
		Window: 2,
		Alpha:  0.5,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if math.Abs(res.Values[1]-105) > eps {
		t.Fatalf("EMA[1] = %v, want 105", res.Values[1])
	}
}

func TestRSIMonotonicSeries(t *testing.T) {
	e := NewEngine()

	res, err := e.Compute(seriesOf(rising(40, 100, 1)...), models.IndicatorConfig{Type: models.IndicatorRSI})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for j, v := range res.Values {
		if v != 100 {
			t.Fatalf("rising series RSI[%d] = %v, want 100", j, v)
		}
		if res.Signals[j].Action != models.ActionSell {
			t.Fatalf("RSI 100 must sell")
		}
		if res.Signals[j].Strength != 1 {
			t.Fatalf("RSI 100 sell strength = %v, want 1", res.Signals[j].Strength)
		}
	}

	res, err = e.Compute(seriesOf(rising(40, 200, -1)...), models.IndicatorConfig{Type: models.IndicatorRSI})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for j, v := range res.Values {
		if v != 0 {
			t.Fatalf("falling series RSI[%d] = %v, want 0", j, v)
		}
		if res.Signals[j].Action != models.ActionBuy {
			t.Fatalf("RSI 0 must buy")
		}
	}
}

func TestRSIOffsetAndLength(t *testing.T) {
	e := NewEngine()
	res, err := e.Compute(seriesOf(rising(40, 100, 1)...), models.IndicatorConfig{Type: models.IndicatorRSI})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Offset != 14 {
		t.Fatalf("offset = %d, want 14", res.Offset)
	}
	if len(res.Values) != 26 {
		t.Fatalf("len = %d, want 26", len(res.Values))
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	e := NewEngine()
	// A wavy series so the histogram actually changes sign.
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/7)
	}
	res, err := e.Compute(seriesOf(closes...), models.IndicatorConfig{Type: models.IndicatorMACD})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	m := res.MACD
	sigOffset := len(m.MACDLine) - len(m.SignalLine)
	if sigOffset != 8 {
		t.Fatalf("signal offset = %d, want 8", sigOffset)
	}
	if len(m.Histogram) != len(m.SignalLine) {
		t.Fatalf("histogram/signal length mismatch")
	}
	for i := range m.Histogram {
		want := m.MACDLine[i+sigOffset] - m.SignalLine[i]
		if m.Histogram[i] != want {
			t.Fatalf("histogram[%d] = %v, want exact %v", i, m.Histogram[i], want)
		}
	}
}

func TestMACDCrossoverSignals(t *testing.T) {
	e := NewEngine()
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/7)
	}
	res, err := e.Compute(seriesOf(closes...), models.IndicatorConfig{Type: models.IndicatorMACD})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	hist := res.MACD.Histogram
	sawBuy, sawSell := false, false
	for i := 1; i < len(hist); i++ {
		act := res.Signals[i].Action
		switch {
		case hist[i-1] <= 0 && hist[i] > 0:
			if act != models.ActionBuy {
				t.Fatalf("bullish cross at %d not flagged buy", i)
			}
			sawBuy = true
		case hist[i-1] >= 0 && hist[i] < 0:
			if act != models.ActionSell {
				t.Fatalf("bearish cross at %d not flagged sell", i)
			}
			sawSell = true
		default:
			if act != models.ActionHold {
				t.Fatalf("no cross at %d but action %s", i, act)
			}
		}
	}
	if !sawBuy || !sawSell {
		t.Fatalf("wave series should produce both crossings")
	}
}

func TestBollingerBandOrdering(t *testing.T) {
	e := NewEngine()
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/5) + float64(i%3)
	}
	res, err := e.Compute(seriesOf(closes...), models.IndicatorConfig{Type: models.IndicatorBollinger})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b := res.Bands
	for j := range b.Middle {
		if !(b.Lower[j] <= b.Middle[j] && b.Middle[j] <= b.Upper[j]) {
			t.Fatalf("band ordering violated at %d: %v %v %v", j, b.Lower[j], b.Middle[j], b.Upper[j])
		}
	}
}

func TestBollingerTouchSignals(t *testing.T) {
	e := NewEngine()
	// Flat series with a sharp drop at the end pierces the lower band.
	closes := append(constant(30, 100), 80)
	res, err := e.Compute(seriesOf(closes...), models.IndicatorConfig{Type: models.IndicatorBollinger})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	last := res.Signals[len(res.Signals)-1]
	if last.Action != models.ActionBuy {
		t.Fatalf("drop through lower band must buy, got %s", last.Action)
	}
	if last.Strength <= 0 {
		t.Fatalf("expected positive strength")
	}
}

func TestSignalAtWarmupResolvesHold(t *testing.T) {
	e := NewEngine()
	res, err := e.Compute(seriesOf(rising(40, 100, 1)...), models.IndicatorConfig{
		Type:   models.IndicatorSMA,
		Window: 20,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for i := 0; i < 19; i++ {
		if res.SignalAt(i).Action != models.ActionHold {
			t.Fatalf("warm-up bar %d must resolve to hold", i)
		}
	}
}
