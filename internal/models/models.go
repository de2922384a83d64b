package models

import "fmt"

// RateDocument is the raw time-series payload returned by the rate provider
// (and by the fallback dataset, which mirrors the same shape). Rates maps
// date strings (YYYY-MM-DD) to currency-code -> rate maps. The map may be
// empty and its keys carry no ordering guarantee.
type RateDocument struct {
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

// DayRecord is a single day's rate with the percentage change from the
// previous day. PctChange is nil for the first record of a series.
type DayRecord struct {
	Date      string   `json:"date"`
	Rate      float64  `json:"rate"`
	PctChange *float64 `json:"pct_change"`
}

// Totals holds aggregate statistics over a day-record sequence. All fields
// are zero when the sequence is empty.
type Totals struct {
	StartRate      float64 `json:"start_rate"`
	EndRate        float64 `json:"end_rate"`
	TotalPctChange float64 `json:"total_pct_change"`
	MeanRate       float64 `json:"mean_rate"`
}

// SummaryResponse is the full payload for a summary request. Days is nil
// (JSON null) unless the requested breakdown is BreakdownDay.
type SummaryResponse struct {
	Base      string      `json:"base"`
	Target    string      `json:"target"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Breakdown string      `json:"breakdown"`
	Days      []DayRecord `json:"days"`
	Totals    Totals      `json:"totals"`
}

// Breakdown selects the granularity of a summary response.
type Breakdown string

const (
	BreakdownDay  Breakdown = "day"
	BreakdownNone Breakdown = "none"
)

// ParseBreakdown validates a breakdown query value. It is the single
// validation point; everything past the HTTP boundary works with the typed
// value.
func ParseBreakdown(value string) (Breakdown, error) {
	switch Breakdown(value) {
	case BreakdownDay:
		return BreakdownDay, nil
	case BreakdownNone:
		return BreakdownNone, nil
	default:
		return "", fmt.Errorf("invalid breakdown %q: must be \"day\" or \"none\"", value)
	}
}

type HealthCheck struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
