package models

import "time"

// Condition is the predicted windscreen surface state.
type Condition string

const (
	ConditionClear Condition = "clear"
	ConditionFog   Condition = "fog"
	ConditionFrost Condition = "frost"
	ConditionIce   Condition = "ice"
)

// ConditionResult is the classifier verdict for one record.
type ConditionResult struct {
	Date        time.Time `json:"date" example:"2025-01-15T00:00:00Z"`
	Condition   Condition `json:"condition" example:"ice"`
	LeadMinutes float64   `json:"lead_minutes" example:"19.2"`
}

// Assessment pairs a weather record with its verdict.
type Assessment struct {
	Record WeatherRecord   `json:"record"`
	Result ConditionResult `json:"result"`
}

// Location is a resolved place to report on.
type Location struct {
	Name string  `json:"name" example:"London, United Kingdom"`
	Lat  float64 `json:"lat" example:"51.5072"`
	Lon  float64 `json:"lon" example:"-0.1276"`
}

// Report is the full answer for one location/vehicle pair: one assessment per
// day in the window, plus tomorrow's entry pulled out for the summary panel.
type Report struct {
	Location Location       `json:"location"`
	Vehicle  VehicleProfile `json:"vehicle"`
	Today    time.Time      `json:"today" example:"2025-01-15T00:00:00Z"`
	Days     []Assessment   `json:"days"`
	Tomorrow *Assessment    `json:"tomorrow,omitempty"`
}
