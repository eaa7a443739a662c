package models

import "time"

// Source tells whether a record was measured or predicted.
type Source string

const (
	SourceObserved Source = "observed"
	SourceForecast Source = "forecast"
)

// WeatherRecord is one morning snapshot for a calendar day. Numeric fields are
// pointers because upstream sources have gaps; nil means unknown.
type WeatherRecord struct {
	Date         time.Time `json:"date" example:"2025-01-15T00:00:00Z"`
	TemperatureC *float64  `json:"temperature_c" example:"-2.1"`
	DewPointC    *float64  `json:"dew_point_c" example:"-3.4"`
	HumidityPct  *float64  `json:"humidity_pct" example:"86.0"`
	WindKph      *float64  `json:"wind_kph" example:"4.3"`
	Source       Source    `json:"source" example:"forecast"`
}

// Day truncates a timestamp to its calendar date in UTC, the key dates are
// compared by throughout the service.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Float returns a pointer to v, for building records with known fields.
func Float(v float64) *float64 {
	return &v
}

// Timeline is an ordered, gap-free run of daily records.
type Timeline []WeatherRecord
