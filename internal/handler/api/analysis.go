// Package api exposes the analysis engine over HTTP.
package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/usecase"
	xhttp "TradePulse/pkg/http"
	xlogger "TradePulse/pkg/logger"
	"TradePulse/pkg/util"
)

// AnalysisHandler serves the indicator, signal, strategy, recommendation and
// backtest routes.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analysis *usecase.AnalysisUseCase
	backtest *usecase.BacktestUseCase
}

func NewAnalysisHandler(logger *xlogger.Logger, analysis *usecase.AnalysisUseCase, backtest *usecase.BacktestUseCase) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis, backtest: backtest}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/indicators", h.Indicators)
	g.GET("/signal", h.Signal)
	g.GET("/strategies", h.Strategies)
	g.GET("/recommend", h.Recommend)
	g.POST("/backtest", h.Backtest)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now := time.Now().UTC()
	from := util.ParseTimeDefault(req.From, now.AddDate(-1, 0, 0))
	to := util.ParseTimeDefault(req.To, now)

	res, err := h.analysis.ComputeIndicators(c.Request().Context(), usecase.ComputeIndicatorsParams{
		Ticker: req.Ticker,
		From:   from,
		To:     to,
		Configs: []models.IndicatorConfig{{
			Type:         models.IndicatorType(req.Type),
			Window:       req.Window,
			Overbought:   req.Overbought,
			Oversold:     req.Oversold,
			FastPeriod:   req.FastPeriod,
			SlowPeriod:   req.SlowPeriod,
			SignalPeriod: req.SignalPeriod,
			Multiplier:   req.Multiplier,
		}},
	})
	if err != nil {
		h.logger.Error("indicators usecase error", xlogger.Error(err))
		return engineErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Signal(c echo.Context) error {
	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sig, err := h.analysis.EvaluateSignal(c.Request().Context(), usecase.EvaluateSignalParams{
		Ticker:      req.Ticker,
		StrategyKey: req.Strategy,
		Bars:        req.N,
	})
	if err != nil {
		h.logger.Error("signal usecase error", xlogger.Error(err))
		return engineErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, sig)
}

func (h *AnalysisHandler) Strategies(c echo.Context) error {
	defs := h.analysis.ListStrategies()
	return xhttp.ListResponse(c, defs, int64(len(defs)))
}

func (h *AnalysisHandler) Recommend(c echo.Context) error {
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.analysis.Recommend(req.HorizonYears, models.RiskTolerance(req.RiskTolerance), req.PortfolioSize)
	if err != nil {
		h.logger.Error("recommend usecase error", xlogger.Error(err))
		return engineErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *AnalysisHandler) Backtest(c echo.Context) error {
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, ok := util.ParseTime(req.From)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid from date")
	}
	to, ok := util.ParseTime(req.To)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid to date")
	}

	res, err := h.backtest.Run(c.Request().Context(), usecase.RunBacktestParams{
		Ticker:              req.Ticker,
		StrategyKey:         req.Strategy,
		From:                from,
		To:                  to,
		InitialCapital:      req.InitialCapital,
		PositionSizePercent: req.PositionSizePercent,
	})
	if err != nil {
		h.logger.Error("backtest usecase error", xlogger.Error(err))
		return engineErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// engineErrorResponse maps the engine error taxonomy onto HTTP statuses.
// Setup errors are the caller's fault; everything else is ours.
func engineErrorResponse(c echo.Context, err error) error {
	var (
		unknownStrategy  *models.UnknownStrategyError
		unknownIndicator *models.UnknownIndicatorTypeError
		invalidParam     *models.InvalidParameterError
		insufficientData *models.InsufficientDataError
		shortHistory     *models.InsufficientHistoryError
		emptyRange       *models.DateRangeEmptyError
		invalidSeries    *models.InvalidSeriesError
	)
	switch {
	case errors.As(err, &unknownStrategy), errors.As(err, &unknownIndicator):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.As(err, &invalidParam),
		errors.As(err, &insufficientData),
		errors.As(err, &shortHistory),
		errors.As(err, &emptyRange),
		errors.As(err, &invalidSeries):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	default:
		return xhttp.AppErrorResponse(c, xhttp.InternalError("internal error").WithError(err))
	}
}
