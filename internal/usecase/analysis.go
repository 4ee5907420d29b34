package usecase

import (
	"context"
	"fmt"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	domservice "TradePulse/internal/domain/service"
	pkgcache "TradePulse/pkg/cache"
	applogger "TradePulse/pkg/logger"
)

// AnalysisUseCase serves indicator computation, signal evaluation and
// strategy recommendation over stored price history.
type AnalysisUseCase struct {
	store      domrepo.PriceStore
	ind        domservice.IndicatorComputer
	strategies domservice.StrategyService
	cache      pkgcache.Service
	publisher  domrepo.SignalPublisher
	metrics    domrepo.Metrics
	signalTTL  time.Duration
	l          *applogger.Logger
}

func NewAnalysisUseCase(
	store domrepo.PriceStore,
	ind domservice.IndicatorComputer,
	strategies domservice.StrategyService,
	cache pkgcache.Service,
	publisher domrepo.SignalPublisher,
	metrics domrepo.Metrics,
	signalTTL time.Duration,
	l *applogger.Logger,
) *AnalysisUseCase {
	if signalTTL <= 0 {
		signalTTL = 15 * time.Minute
	}
	return &AnalysisUseCase{
		store:      store,
		ind:        ind,
		strategies: strategies,
		cache:      cache,
		publisher:  publisher,
		metrics:    metrics,
		signalTTL:  signalTTL,
		l:          l,
	}
}

type ComputeIndicatorsParams struct {
	Ticker  string
	From    time.Time
	To      time.Time
	Configs []models.IndicatorConfig
}

type ComputeIndicatorsResult struct {
	Ticker  string                   `json:"ticker"`
	From    time.Time                `json:"from"`
	To      time.Time                `json:"to"`
	Bars    int                      `json:"bars"`
	Results []models.IndicatorResult `json:"results"`
}

// ComputeIndicators loads the requested range and computes each configured
// indicator over it. A single bad config fails the whole call; the caller
// asked for exactly these indicators.
func (uc *AnalysisUseCase) ComputeIndicators(ctx context.Context, p ComputeIndicatorsParams) (*ComputeIndicatorsResult, error) {
	if p.Ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	if len(p.Configs) == 0 {
		return nil, fmt.Errorf("at least one indicator required")
	}
	series, err := uc.loadRange(ctx, p.Ticker, p.From, p.To)
	if err != nil {
		return nil, err
	}

	results := make([]models.IndicatorResult, 0, len(p.Configs))
	for _, cfg := range p.Configs {
		res, err := uc.ind.Compute(series, cfg)
		if err != nil {
			uc.recordError("indicator_compute")
			return nil, err
		}
		results = append(results, res)
	}
	return &ComputeIndicatorsResult{
		Ticker:  p.Ticker,
		From:    p.From,
		To:      p.To,
		Bars:    len(series),
		Results: results,
	}, nil
}

type EvaluateSignalParams struct {
	Ticker      string
	StrategyKey string
	Bars        int
}

// EvaluateSignal evaluates the strategy at the latest stored bar, using the
// most recent Bars bars of history. The result is cached until the stored
// history moves and published downstream on every fresh evaluation.
func (uc *AnalysisUseCase) EvaluateSignal(ctx context.Context, p EvaluateSignalParams) (models.Signal, error) {
	if p.Ticker == "" {
		return models.Signal{}, fmt.Errorf("ticker required")
	}
	if p.Bars <= 0 {
		p.Bars = 260
	}
	series, err := uc.store.GetLatestBars(ctx, p.Ticker, p.Bars)
	if err != nil {
		uc.recordError("price_store")
		return models.Signal{}, fmt.Errorf("load bars: %w", err)
	}
	if len(series) == 0 {
		return models.Signal{}, &models.DateRangeEmptyError{Ticker: p.Ticker}
	}

	cacheKey := signalCacheKey(p.Ticker, p.StrategyKey, series)
	if uc.cache != nil {
		var cached models.Signal
		if err := uc.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	start := time.Now()
	sig, err := uc.strategies.Evaluate(p.Ticker, p.StrategyKey, series)
	if err != nil {
		uc.recordError("signal_evaluate")
		return models.Signal{}, err
	}
	if uc.metrics != nil {
		uc.metrics.RecordSignal(p.StrategyKey, sig.Action)
		uc.metrics.RecordLatency("evaluate_signal", time.Since(start).Seconds())
		uc.metrics.RecordLastClose(p.Ticker, series[len(series)-1].Close)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, sig, uc.signalTTL); err != nil && uc.l != nil {
			uc.l.Warn("signal cache set failed", applogger.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, &sig); err != nil {
			// Publishing is best-effort; the caller still gets the signal.
			uc.recordError("signal_publish")
			if uc.l != nil {
				uc.l.Warn("signal publish failed",
					applogger.String("ticker", p.Ticker),
					applogger.String("strategy", p.StrategyKey),
					applogger.Error(err),
				)
			}
		}
	}
	return sig, nil
}

// ListStrategies returns the registered strategy definitions.
func (uc *AnalysisUseCase) ListStrategies() []models.StrategyDefinition {
	return uc.strategies.ListStrategies()
}

// Recommend maps an investor profile to a strategy.
func (uc *AnalysisUseCase) Recommend(horizonYears float64, risk models.RiskTolerance, portfolioSize float64) (models.Recommendation, error) {
	return uc.strategies.Recommend(horizonYears, risk, portfolioSize)
}

func (uc *AnalysisUseCase) loadRange(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(-2, 0, 0)
	}
	if from.After(to) {
		return nil, fmt.Errorf("from must be <= to")
	}
	series, err := uc.store.GetDailyBars(ctx, ticker, from, to)
	if err != nil {
		uc.recordError("price_store")
		return nil, fmt.Errorf("load bars: %w", err)
	}
	if len(series) == 0 {
		return nil, &models.DateRangeEmptyError{Ticker: ticker, From: from, To: to}
	}
	return series, nil
}

func (uc *AnalysisUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}

func signalCacheKey(ticker, strategyKey string, series models.PriceSeries) string {
	last := series[len(series)-1].Date.Format("2006-01-02")
	return fmt.Sprintf("tradepulse:signal:%s:%s:%s", ticker, strategyKey, last)
}
