package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePoint is one observation of the short-term government rate, in percent.
type RatePoint struct {
	Date time.Time       `yaml:"date" json:"date"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// RateLookup is the outcome of a range-average query against the rate series.
type RateLookup struct {
	Rate     decimal.Decimal `json:"rate"`
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Points   int             `json:"points"`
	Fallback bool            `json:"fallback"`
	// Source is "range", "earliest", "latest" or "default".
	Source string `json:"source"`
}
