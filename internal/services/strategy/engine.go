package strategy

import (
	"fmt"
	"sort"
	"strings"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/indicator"
	applogger "TradePulse/pkg/logger"
)

// Engine evaluates strategies over price series. Stateless apart from the
// injected registry; safe for concurrent use.
type Engine struct {
	registry *Registry
	ind      *indicator.Engine
	logger   *applogger.Logger
}

// NewEngine creates a strategy engine over the given registry.
func NewEngine(registry *Registry, ind *indicator.Engine, l *applogger.Logger) *Engine {
	return &Engine{registry: registry, ind: ind, logger: l}
}

// Registry returns the injected strategy registry.
func (e *Engine) Registry() *Registry { return e.registry }

// ListStrategies returns the registered strategy definitions.
func (e *Engine) ListStrategies() []models.StrategyDefinition { return e.registry.List() }

// Evaluation holds one strategy's computed indicators over one series.
// Indicators that failed to compute appear in Failed and degrade to hold
// during rule evaluation.
type Evaluation struct {
	Definition models.StrategyDefinition
	Results    map[string]*models.IndicatorResult
	Failed     map[string]error
}

// RequiredHistory returns the longest required window among the strategy's
// indicators.
func (e *Engine) RequiredHistory(def models.StrategyDefinition) (int, error) {
	longest := 0
	for _, cfg := range def.Indicators {
		need, err := e.ind.RequiredWindow(cfg)
		if err != nil {
			return 0, err
		}
		if need > longest {
			longest = need
		}
	}
	return longest, nil
}

// Prepare computes every indicator of the strategy over the series. A failing
// indicator is logged and recorded in Failed rather than aborting; the rule
// evaluator treats it as hold.
func (e *Engine) Prepare(def models.StrategyDefinition, series models.PriceSeries) *Evaluation {
	ev := &Evaluation{
		Definition: def,
		Results:    make(map[string]*models.IndicatorResult, len(def.Indicators)),
		Failed:     make(map[string]error),
	}
	for _, cfg := range def.Indicators {
		norm, err := indicator.Normalize(cfg)
		if err != nil {
			ev.Failed[cfg.Key()] = err
			e.logDegraded(def.Key, cfg.Key(), err)
			continue
		}
		res, err := e.ind.Compute(series, norm)
		if err != nil {
			ev.Failed[norm.Key()] = err
			e.logDegraded(def.Key, norm.Key(), err)
			continue
		}
		ev.Results[norm.Key()] = &res
	}
	return ev
}

func (e *Engine) logDegraded(strategyKey, indicatorKey string, err error) {
	if e.logger == nil {
		return
	}
	e.logger.Warn("indicator degraded to hold",
		applogger.String("strategy", strategyKey),
		applogger.String("indicator", indicatorKey),
		applogger.Error(err),
	)
}

// ConsolidateAt applies the strategy's rule at one bar.
func (e *Engine) ConsolidateAt(ev *Evaluation, series models.PriceSeries, bar int) models.SignalAction {
	in := &evalInput{series: series, results: ev.Results}
	return ruleFor(ev.Definition.Key)(in, bar)
}

// SignalAt builds the full consolidated signal for one bar: action,
// confidence, strength and a human-readable reason. The timestamp is the
// bar's date, keeping evaluation deterministic.
func (e *Engine) SignalAt(ticker string, ev *Evaluation, series models.PriceSeries, bar int) models.Signal {
	action := e.ConsolidateAt(ev, series, bar)
	confidence, strength, agreeing := e.scoreAt(ev, action, bar)
	return models.Signal{
		Ticker:     ticker,
		Action:     action,
		Confidence: confidence,
		Strength:   strength,
		Reason:     reason(action, agreeing, len(ev.Definition.Indicators)),
		Timestamp:  series[bar].Date,
	}
}

// Evaluate runs the named strategy against the latest bar of the series.
func (e *Engine) Evaluate(ticker, strategyKey string, series models.PriceSeries) (models.Signal, error) {
	def, err := e.registry.Get(strategyKey)
	if err != nil {
		return models.Signal{}, err
	}
	if len(series) == 0 {
		return models.Signal{}, &models.DateRangeEmptyError{Ticker: ticker}
	}
	ev := e.Prepare(def, series)
	return e.SignalAt(ticker, ev, series, len(series)-1), nil
}

// scoreAt computes confidence as the fraction of the strategy's indicators
// whose own per-bar signal agrees with the consolidated action, and strength
// as the mean strength of the agreeing signals. With no usable indicators the
// confidence defaults to 0.5.
func (e *Engine) scoreAt(ev *Evaluation, action models.SignalAction, bar int) (confidence, strength float64, agreeing []string) {
	in := &evalInput{results: ev.Results}
	total := len(ev.Results)
	if total == 0 {
		return 0.5, 0, nil
	}

	var agree int
	var strengthSum float64
	for key := range ev.Results {
		sig := in.barSignal(key, bar)
		if sig.Action == action {
			agree++
			strengthSum += sig.Strength
			agreeing = append(agreeing, key)
		}
	}
	sort.Strings(agreeing)

	confidence = float64(agree) / float64(total)
	if agree > 0 && action != models.ActionHold {
		strength = strengthSum / float64(agree)
	}
	return confidence, strength, agreeing
}

func reason(action models.SignalAction, agreeing []string, total int) string {
	if len(agreeing) == 0 {
		return fmt.Sprintf("%s: no indicator consensus", action)
	}
	return fmt.Sprintf("%s: %d/%d indicators agree (%s)",
		action, len(agreeing), total, strings.Join(agreeing, ", "))
}
