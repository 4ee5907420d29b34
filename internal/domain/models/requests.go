package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency
// and reuse across handlers.

type IndicatorsRequest struct {
	Ticker       string  `query:"ticker" json:"ticker" validate:"required"`
	Type         string  `query:"type" json:"type" default:"SMA" validate:"oneof=SMA EMA RSI MACD BOLLINGER"`
	Window       int     `query:"window" json:"window" validate:"gte=0,lte=500"`
	Overbought   float64 `query:"overbought" json:"overbought" validate:"gte=0,lte=100"`
	Oversold     float64 `query:"oversold" json:"oversold" validate:"gte=0,lte=100"`
	FastPeriod   int     `query:"fast" json:"fast" validate:"gte=0,lte=500"`
	SlowPeriod   int     `query:"slow" json:"slow" validate:"gte=0,lte=500"`
	SignalPeriod int     `query:"signal" json:"signal" validate:"gte=0,lte=500"`
	Multiplier   float64 `query:"multiplier" json:"multiplier" validate:"gte=0,lte=10"`
	From         string  `query:"from" json:"from"`
	To           string  `query:"to" json:"to"`
}

type SignalRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required"`
	Strategy string `query:"strategy" json:"strategy" default:"trend_following"`
	N        int    `query:"n" json:"n" default:"260" validate:"gte=1,lte=5000"`
}

type RecommendRequest struct {
	HorizonYears  float64 `query:"horizon" json:"horizon" default:"1" validate:"gt=0,lte=50"`
	RiskTolerance string  `query:"risk" json:"risk" default:"medium" validate:"oneof=low medium high"`
	PortfolioSize float64 `query:"size" json:"size" validate:"gte=0"`
}

type BacktestRequest struct {
	Ticker              string  `query:"ticker" json:"ticker" validate:"required"`
	Strategy            string  `query:"strategy" json:"strategy" default:"trend_following"`
	From                string  `query:"from" json:"from" validate:"required"`
	To                  string  `query:"to" json:"to" validate:"required"`
	InitialCapital      float64 `query:"capital" json:"capital" default:"10000" validate:"gt=0"`
	PositionSizePercent float64 `query:"positionSize" json:"positionSize" default:"50" validate:"gt=0,lte=100"`
}
