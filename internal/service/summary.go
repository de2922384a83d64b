package service

import (
	"context"
	"math"
	"sort"

	"github.com/dalfonso89/fx-summary-service/internal/config"
	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// SummaryService is the entry point the HTTP layer depends on: it fetches a
// rate document through the pipeline and derives per-day and aggregate
// statistics from it. Safe for concurrent use; it either returns a complete
// response or an error, never a partial one.
type SummaryService struct {
	pipeline       *Pipeline
	baseCurrency   string
	targetCurrency string
	logger         *logger.Logger
}

// NewSummaryService creates a summary service over pipeline.
func NewSummaryService(pipeline *Pipeline, configuration *config.Config, logger *logger.Logger) *SummaryService {
	return &SummaryService{
		pipeline:       pipeline,
		baseCurrency:   configuration.BaseCurrency,
		targetCurrency: configuration.TargetCurrency,
		logger:         logger,
	}
}

// GetSummary returns the rate summary for [startDate, endDate] at the
// requested breakdown granularity.
func (service *SummaryService) GetSummary(ctx context.Context, startDate, endDate string, breakdown models.Breakdown) (models.SummaryResponse, error) {
	document, err := service.pipeline.FetchRates(ctx, startDate, endDate)
	if err != nil {
		return models.SummaryResponse{}, err
	}

	records := service.buildDayRecords(document.Rates)
	totals := buildTotals(records)
	service.logger.Debugf("Built summary for %s..%s (%d days)", startDate, endDate, len(records))

	response := models.SummaryResponse{
		Base:      service.baseCurrency,
		Target:    service.targetCurrency,
		StartDate: startDate,
		EndDate:   endDate,
		Breakdown: string(breakdown),
		Totals:    totals,
	}

	switch breakdown {
	case models.BreakdownDay:
		response.Days = records
	case models.BreakdownNone:
		response.Days = nil
	}

	return response, nil
}

// buildDayRecords turns the raw rates map into day records sorted ascending
// by date. ISO dates sort lexicographically in chronological order, so a
// plain string sort suffices. A date missing the target currency counts as
// 0.0 rather than failing.
func (service *SummaryService) buildDayRecords(rates map[string]map[string]float64) []models.DayRecord {
	dates := make([]string, 0, len(rates))
	for date := range rates {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	records := make([]models.DayRecord, 0, len(dates))
	var previousRate *float64

	for _, date := range dates {
		rate := rates[date][service.targetCurrency]

		var pctChange *float64
		if previousRate != nil {
			change := safePctChange(rate, *previousRate)
			pctChange = &change
		}

		records = append(records, models.DayRecord{
			Date:      date,
			Rate:      rate,
			PctChange: pctChange,
		})
		rateCopy := rate
		previousRate = &rateCopy
	}

	return records
}

// buildTotals computes aggregate statistics over records. Every field is
// zero for an empty sequence.
func buildTotals(records []models.DayRecord) models.Totals {
	if len(records) == 0 {
		return models.Totals{}
	}

	startRate := records[0].Rate
	endRate := records[len(records)-1].Rate

	var sum float64
	for _, record := range records {
		sum += record.Rate
	}

	return models.Totals{
		StartRate:      startRate,
		EndRate:        endRate,
		TotalPctChange: safePctChange(endRate, startRate),
		MeanRate:       roundTo(sum/float64(len(records)), 6),
	}
}

// safePctChange is percentage change guarded against division by zero: a
// zero previous rate yields 0.0, not an error.
func safePctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return roundTo((current-previous)/previous*100, 4)
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
