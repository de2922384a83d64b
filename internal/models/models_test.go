package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseBreakdown(t *testing.T) {
	tests := []struct {
		input   string
		want    Breakdown
		wantErr bool
	}{
		{"day", BreakdownDay, false},
		{"none", BreakdownNone, false},
		{"", "", true},
		{"week", "", true},
		{"DAY", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBreakdown(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBreakdown(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBreakdown(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSummaryResponse_DaysNullWhenNil(t *testing.T) {
	response := SummaryResponse{
		Base:      "EUR",
		Target:    "USD",
		StartDate: "2025-01-02",
		EndDate:   "2025-01-03",
		Breakdown: "none",
		Days:      nil,
		Totals:    Totals{StartRate: 1.03, EndRate: 1.05, TotalPctChange: 1.9417, MeanRate: 1.04},
	}

	encoded, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(encoded), `"days":null`) {
		t.Errorf("Marshal() = %s, want days serialized as null", encoded)
	}
}

func TestDayRecord_PctChangeNullForFirstDay(t *testing.T) {
	record := DayRecord{Date: "2025-01-02", Rate: 1.03, PctChange: nil}

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(encoded), `"pct_change":null`) {
		t.Errorf("Marshal() = %s, want pct_change serialized as null", encoded)
	}
}

func TestRateDocument_Unmarshal(t *testing.T) {
	payload := `{
		"base": "EUR",
		"start_date": "2025-01-02",
		"end_date": "2025-01-03",
		"rates": {
			"2025-01-02": {"USD": 1.03},
			"2025-01-03": {"USD": 1.05}
		}
	}`

	var document RateDocument
	if err := json.Unmarshal([]byte(payload), &document); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if document.Base != "EUR" {
		t.Errorf("Base = %v, want EUR", document.Base)
	}
	if document.Rates["2025-01-03"]["USD"] != 1.05 {
		t.Errorf("rate = %v, want 1.05", document.Rates["2025-01-03"]["USD"])
	}
}
