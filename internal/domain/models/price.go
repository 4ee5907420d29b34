package models

import "time"

// PricePoint is a single daily OHLCV bar.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is an ordered sequence of daily bars, strictly ascending by date
// with no duplicates. The engine only reads it, never mutates it.
type PriceSeries []PricePoint

// Validate checks the series invariants: strictly ascending dates and
// low <= open,close <= high with non-negative volume on every bar.
func (s PriceSeries) Validate() error {
	for i, p := range s {
		if p.Low > p.Open || p.Low > p.Close || p.High < p.Open || p.High < p.Close {
			return &InvalidSeriesError{Index: i, Reason: "ohlc out of range"}
		}
		if p.Volume < 0 {
			return &InvalidSeriesError{Index: i, Reason: "negative volume"}
		}
		if i > 0 && !s[i-1].Date.Before(p.Date) {
			return &InvalidSeriesError{Index: i, Reason: "dates not strictly ascending"}
		}
	}
	return nil
}

// Closes returns the close prices of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Between returns the sub-series with from <= date <= to. The result shares
// the backing array; callers must not mutate it.
func (s PriceSeries) Between(from, to time.Time) PriceSeries {
	lo := 0
	for lo < len(s) && s[lo].Date.Before(from) {
		lo++
	}
	hi := len(s)
	for hi > lo && s[hi-1].Date.After(to) {
		hi--
	}
	return s[lo:hi]
}

// Span returns the calendar span of the series in days.
func (s PriceSeries) Span() float64 {
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1].Date.Sub(s[0].Date).Hours() / 24
}
