package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"frostcast/internal/models"
	"frostcast/pkg/observe"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoHourlyLayout = "2006-01-02T15:04"
)

// OpenMeteoRepository pulls hourly temperature, humidity, dew point and wind
// from the Open-Meteo forecast API, which serves past days and forecast days
// in one call, and reduces the stream to one morning snapshot per day.
type OpenMeteoRepository struct {
	BaseURL     string
	MorningHour int
	httpClient  HTTPClient
	l           *observe.Logger
}

func NewOpenMeteoRepository(baseURL string, morningHour int, l *observe.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	return &OpenMeteoRepository{
		BaseURL:     baseURL,
		MorningHour: morningHour,
		httpClient:  httpClient,
		l:           l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

// OpenMeteoHourly mirrors the hourly block of the API response. Values can be
// null for gaps in the archive, hence the pointer slices.
type OpenMeteoHourly struct {
	Time               []string   `json:"time"`
	Temperature2m      []*float64 `json:"temperature_2m"`
	RelativeHumidity2m []*float64 `json:"relative_humidity_2m"`
	DewPoint2m         []*float64 `json:"dew_point_2m"`
	WindSpeed10m       []*float64 `json:"wind_speed_10m"`
}

func (o *OpenMeteoRepository) FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) ([]models.WeatherRecord, []models.WeatherRecord, error) {
	// forecast_days counts today, so the window [today, today+forecastDays]
	// needs forecastDays+1 of them.
	url := fmt.Sprintf(
		"%s?latitude=%f&longitude=%f&hourly=temperature_2m,relative_humidity_2m,dew_point_2m,wind_speed_10m&past_days=%d&forecast_days=%d&timezone=auto",
		o.BaseURL, lat, lon, historyDays, forecastDays+1,
	)

	o.l.Info("making openmeteo API request", map[string]any{
		"lat": lat, "lon": lon, "pastDays": historyDays, "forecastDays": forecastDays + 1,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response struct {
		Hourly OpenMeteoHourly `json:"hourly"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(response.Hourly.Time) == 0 {
		return nil, nil, fmt.Errorf("no hourly data available")
	}

	records, err := morningSnapshots(response.Hourly, o.MorningHour)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build records: %w", err)
	}

	o.l.Info("parsed API response", map[string]any{
		"hours": len(response.Hourly.Time),
		"days":  len(records),
	})

	historical, forecast := splitByToday(records, today)
	return historical, forecast, nil
}

// morningSnapshots keeps one record per calendar day: the row at morningHour.
func morningSnapshots(hourly OpenMeteoHourly, morningHour int) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord

	for i, stamp := range hourly.Time {
		t, err := time.Parse(openMeteoHourlyLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time %s: %w", stamp, err)
		}
		if t.Hour() != morningHour {
			continue
		}

		rec := models.WeatherRecord{Date: models.Day(t)}
		if i < len(hourly.Temperature2m) {
			rec.TemperatureC = hourly.Temperature2m[i]
		}
		if i < len(hourly.DewPoint2m) {
			rec.DewPointC = hourly.DewPoint2m[i]
		}
		if i < len(hourly.RelativeHumidity2m) {
			rec.HumidityPct = hourly.RelativeHumidity2m[i]
		}
		if i < len(hourly.WindSpeed10m) {
			rec.WindKph = hourly.WindSpeed10m[i]
		}
		records = append(records, rec)
	}

	return records, nil
}

// splitByToday partitions records on the day boundary: strictly before today
// is observed history, today onward is forecast.
func splitByToday(records []models.WeatherRecord, today time.Time) (historical, forecast []models.WeatherRecord) {
	day := models.Day(today)
	for _, rec := range records {
		if rec.Date.Before(day) {
			historical = append(historical, rec)
		} else {
			forecast = append(forecast, rec)
		}
	}
	return historical, forecast
}
