package models

import (
	"fmt"
	"time"
)

// Engine error taxonomy. Setup-time errors (bad params, unknown types, empty
// ranges) are fatal to the call; per-bar indicator failures during strategy
// evaluation degrade to hold locally and never surface as these types.

// InsufficientDataError reports a series shorter than an indicator's window.
type InsufficientDataError struct {
	Type IndicatorType
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need %d bars, have %d", e.Type, e.Need, e.Have)
}

// InvalidParameterError reports an out-of-range indicator or simulation parameter.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// UnknownIndicatorTypeError reports an unrecognized indicator family.
type UnknownIndicatorTypeError struct {
	Type string
}

func (e *UnknownIndicatorTypeError) Error() string {
	return fmt.Sprintf("unknown indicator type %q", e.Type)
}

// UnknownStrategyError reports a strategy key missing from the registry.
type UnknownStrategyError struct {
	Key string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", e.Key)
}

// DateRangeEmptyError reports a backtest window with no price points.
type DateRangeEmptyError struct {
	Ticker string
	From   time.Time
	To     time.Time
}

func (e *DateRangeEmptyError) Error() string {
	return fmt.Sprintf("no price data for %s between %s and %s",
		e.Ticker, e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}

// InsufficientHistoryError reports a series shorter than a strategy's longest
// required indicator window.
type InsufficientHistoryError struct {
	Strategy string
	Need     int
	Have     int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("strategy %s needs %d bars of history, have %d", e.Strategy, e.Need, e.Have)
}

// InvalidSeriesError reports a malformed price series handed to the engine.
type InvalidSeriesError struct {
	Index  int
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	return fmt.Sprintf("invalid price series at index %d: %s", e.Index, e.Reason)
}
