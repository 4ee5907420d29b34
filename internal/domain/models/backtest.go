package models

import "time"

// TradeSide is the direction of a simulated fill.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// SimTrade is one simulated fill in a backtest. RealizedPnL is set on sells
// only. Appended to the trade log, never mutated after creation.
type SimTrade struct {
	Date        time.Time `json:"date"`
	Side        TradeSide `json:"side"`
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"`
	RealizedPnL float64   `json:"realizedPnL,omitempty"`
}

// EquityPoint is one mark-to-market observation of simulated portfolio value.
type EquityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Period is a closed calendar interval.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BacktestMetrics holds the performance numbers derived from a completed run.
// Field names are fixed for dashboard compatibility.
type BacktestMetrics struct {
	TotalReturn      float64 `json:"totalReturn"`
	CAGR             float64 `json:"cagr"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	WinRate          float64 `json:"winRate"`
	TotalTrades      int     `json:"totalTrades"`
	ProfitableTrades int     `json:"profitableTrades"`
	AverageReturn    float64 `json:"averageReturn"`
	FinalValue       float64 `json:"finalValue"`
	InitialCapital   float64 `json:"initialCapital"`
}

// BacktestResult is the immutable outcome of one simulation run.
type BacktestResult struct {
	Ticker      string          `json:"ticker"`
	Strategy    string          `json:"strategy"`
	Period      Period          `json:"period"`
	EquityCurve []EquityPoint   `json:"equityCurve"`
	Trades      []SimTrade      `json:"trades"`
	Metrics     BacktestMetrics `json:"metrics"`
}
