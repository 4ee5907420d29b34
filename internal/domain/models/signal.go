package models

import "time"

// Signal is the consolidated per-ticker decision a strategy emits.
// Immutable once produced.
type Signal struct {
	Ticker     string       `json:"ticker"`
	Action     SignalAction `json:"signal"`
	Confidence float64      `json:"confidence"`
	Strength   float64      `json:"strength"`
	Reason     string       `json:"reason"`
	Timestamp  time.Time    `json:"timestamp"`
}
