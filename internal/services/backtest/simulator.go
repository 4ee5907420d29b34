// Package backtest replays a strategy bar-by-bar over a historical price
// series and derives performance metrics from the resulting equity curve and
// trade log. The simulation is long-only: the position state machine moves
// FLAT to LONG on a buy and back on a sell, never shorts.
package backtest

import (
	"context"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/services/strategy"
	applogger "TradePulse/pkg/logger"
)

// DefaultPositionSizePercent is spent from available cash on each entry when
// the caller does not override it.
const DefaultPositionSizePercent = 50.0

// Params configures one simulation run.
type Params struct {
	Ticker              string
	StrategyKey         string
	InitialCapital      float64
	PositionSizePercent float64
}

// Simulator runs backtests. Stateless between runs and safe for concurrent
// use; every run keeps its position state on the stack.
type Simulator struct {
	strategies *strategy.Engine
	logger     *applogger.Logger
}

// NewSimulator creates a simulator over the given strategy engine.
func NewSimulator(strategies *strategy.Engine, l *applogger.Logger) *Simulator {
	return &Simulator{strategies: strategies, logger: l}
}

// Run replays the strategy over the series. The context is checked between
// bars so long sweeps can be aborted cleanly. A run that triggers zero trades
// is a valid result with totalReturn 0.
func (s *Simulator) Run(ctx context.Context, params Params, series models.PriceSeries) (models.BacktestResult, error) {
	if params.InitialCapital <= 0 {
		return models.BacktestResult{}, &models.InvalidParameterError{
			Param:  "initialCapital",
			Reason: "must be positive",
		}
	}
	if params.PositionSizePercent == 0 {
		params.PositionSizePercent = DefaultPositionSizePercent
	}
	if params.PositionSizePercent <= 0 || params.PositionSizePercent > 100 {
		return models.BacktestResult{}, &models.InvalidParameterError{
			Param:  "positionSizePercent",
			Reason: "must be in (0, 100]",
		}
	}
	if len(series) == 0 {
		return models.BacktestResult{}, &models.DateRangeEmptyError{Ticker: params.Ticker}
	}
	if err := series.Validate(); err != nil {
		return models.BacktestResult{}, err
	}

	def, err := s.strategies.Registry().Get(params.StrategyKey)
	if err != nil {
		return models.BacktestResult{}, err
	}
	need, err := s.strategies.RequiredHistory(def)
	if err != nil {
		return models.BacktestResult{}, err
	}
	if len(series) < need {
		return models.BacktestResult{}, &models.InsufficientHistoryError{
			Strategy: def.Key,
			Need:     need,
			Have:     len(series),
		}
	}

	// Every indicator here is forward-recursive: its value at bar i depends
	// only on bars 0..i, so one full-series computation reads back per bar
	// without lookahead.
	ev := s.strategies.Prepare(def, series)

	var (
		cash         = params.InitialCapital
		quantity     int64
		avgBuyPrice  float64
		trades       []models.SimTrade
		tradeReturns []float64
		equity       = make([]models.EquityPoint, 0, len(series))
	)

	for i := range series {
		if err := ctx.Err(); err != nil {
			return models.BacktestResult{}, err
		}

		bar := series[i]
		action := s.strategies.ConsolidateAt(ev, series, i)

		switch {
		case action == models.ActionBuy && quantity == 0:
			budget := cash * params.PositionSizePercent / 100
			qty := int64(budget / bar.Close)
			if qty > 0 {
				cash -= float64(qty) * bar.Close
				quantity = qty
				avgBuyPrice = bar.Close
				trades = append(trades, models.SimTrade{
					Date:     bar.Date,
					Side:     models.SideBuy,
					Quantity: qty,
					Price:    bar.Close,
				})
			}
		case action == models.ActionSell && quantity > 0:
			pnl := (bar.Close - avgBuyPrice) * float64(quantity)
			costBasis := avgBuyPrice * float64(quantity)
			cash += float64(quantity) * bar.Close
			trades = append(trades, models.SimTrade{
				Date:        bar.Date,
				Side:        models.SideSell,
				Quantity:    quantity,
				Price:       bar.Close,
				RealizedPnL: pnl,
			})
			tradeReturns = append(tradeReturns, pnl/costBasis)
			quantity = 0
			avgBuyPrice = 0
		}

		equity = append(equity, models.EquityPoint{
			Date:  bar.Date,
			Value: cash + float64(quantity)*bar.Close,
		})
	}

	finalValue := equity[len(equity)-1].Value
	result := models.BacktestResult{
		Ticker:   params.Ticker,
		Strategy: def.Key,
		Period: models.Period{
			Start: series[0].Date,
			End:   series[len(series)-1].Date,
		},
		EquityCurve: equity,
		Trades:      trades,
		Metrics:     computeMetrics(params.InitialCapital, finalValue, series.Span(), equity, trades, tradeReturns),
	}

	if s.logger != nil {
		s.logger.Info("backtest complete",
			applogger.String("ticker", params.Ticker),
			applogger.String("strategy", def.Key),
			applogger.Int("bars", len(series)),
			applogger.Int("trades", len(trades)),
		)
	}
	return result, nil
}
