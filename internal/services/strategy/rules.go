package strategy

import "TradePulse/internal/domain/models"

// evalInput exposes one strategy's computed indicators to a rule evaluator.
// Lookups return ok=false during warm-up and for indicators that failed to
// compute; rules must degrade those to a non-triggering condition, never
// abort.
type evalInput struct {
	series  models.PriceSeries
	results map[string]*models.IndicatorResult
}

// value returns the indicator value at source bar i for single-line families.
func (in *evalInput) value(key string, bar int) (float64, bool) {
	r, ok := in.results[key]
	if !ok || r.Values == nil {
		return 0, false
	}
	j := bar - r.Offset
	if j < 0 || j >= len(r.Values) {
		return 0, false
	}
	return r.Values[j], true
}

// bands returns the Bollinger bands at source bar i.
func (in *evalInput) bands(key string, bar int) (upper, middle, lower float64, ok bool) {
	r, found := in.results[key]
	if !found || r.Bands == nil {
		return 0, 0, 0, false
	}
	j := bar - r.Offset
	if j < 0 || j >= len(r.Bands.Middle) {
		return 0, 0, 0, false
	}
	return r.Bands.Upper[j], r.Bands.Middle[j], r.Bands.Lower[j], true
}

// barSignal returns the indicator's own per-bar signal, holding through
// warm-up and failures.
func (in *evalInput) barSignal(key string, bar int) models.BarSignal {
	r, ok := in.results[key]
	if !ok {
		return models.BarSignal{Action: models.ActionHold}
	}
	return r.SignalAt(bar)
}

// ruleFunc evaluates a strategy's entry/exit predicate at one bar.
type ruleFunc func(in *evalInput, bar int) models.SignalAction

// ruleFor selects the evaluator for a strategy key. Custom strategies fall
// back to a majority vote over their indicators' own signals.
func ruleFor(key string) ruleFunc {
	switch key {
	case KeyTrendFollowing:
		return trendFollowingRule
	case KeyMeanReversion:
		return meanReversionRule
	case KeyMomentum:
		return momentumRule
	case KeyConservative:
		return conservativeRule
	default:
		return consensusRule
	}
}

func trendFollowingRule(in *evalInput, bar int) models.SignalAction {
	price := in.series[bar].Close
	sma50, ok50 := in.value("SMA_50", bar)
	sma200, ok200 := in.value("SMA_200", bar)
	if !ok50 || !ok200 {
		return models.ActionHold
	}
	if price > sma50 && sma50 > sma200 {
		return models.ActionBuy
	}
	return models.ActionSell
}

func meanReversionRule(in *evalInput, bar int) models.SignalAction {
	price := in.series[bar].Close
	rsi, rsiOK := in.value("RSI_14", bar)
	upper, _, lower, bandsOK := in.bands("BOLLINGER_20", bar)

	if (rsiOK && rsi < meanReversionRSIBuyMax) || (bandsOK && price < lower) {
		return models.ActionBuy
	}
	if (rsiOK && rsi > meanReversionRSISellMin) || (bandsOK && price > upper) {
		return models.ActionSell
	}
	return models.ActionHold
}

func momentumRule(in *evalInput, bar int) models.SignalAction {
	macdSig := in.barSignal("MACD_12_26_9", bar)
	rsi, rsiOK := in.value("RSI_14", bar)

	if macdSig.Action == models.ActionBuy && rsiOK && rsi > momentumRSIPivot {
		return models.ActionBuy
	}
	if macdSig.Action == models.ActionSell || (rsiOK && rsi < momentumRSIPivot) {
		return models.ActionSell
	}
	return models.ActionHold
}

func conservativeRule(in *evalInput, bar int) models.SignalAction {
	price := in.series[bar].Close
	sma50, smaOK := in.value("SMA_50", bar)
	rsi, rsiOK := in.value("RSI_14", bar)
	upper, middle, _, bandsOK := in.bands("BOLLINGER_20", bar)

	if (smaOK && price < sma50) || (rsiOK && rsi > conservativeRSISellMin) || (bandsOK && price > upper) {
		return models.ActionSell
	}
	if smaOK && rsiOK && bandsOK &&
		price > sma50 && rsi < conservativeRSIBuyMax && price < middle {
		return models.ActionBuy
	}
	return models.ActionHold
}

// consensusRule takes the majority of the indicators' own signals; ties hold.
func consensusRule(in *evalInput, bar int) models.SignalAction {
	buys, sells := 0, 0
	for key := range in.results {
		switch in.barSignal(key, bar).Action {
		case models.ActionBuy:
			buys++
		case models.ActionSell:
			sells++
		}
	}
	switch {
	case buys > sells:
		return models.ActionBuy
	case sells > buys:
		return models.ActionSell
	default:
		return models.ActionHold
	}
}
