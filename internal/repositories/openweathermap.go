package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"frostcast/internal/models"
	"frostcast/pkg/observe"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

	openWeatherMapStepLayout = "2006-01-02 15:04:05"
)

// Magnus-Tetens coefficients for dew point over water, valid for the
// temperature range this service cares about.
const (
	magnusA = 17.62
	magnusB = 243.12
)

// OpenWeatherMapRepository is the fallback provider. The 5-day/3-hour feed
// carries no past days and no dew point; dew point is derived from
// temperature and relative humidity.
type OpenWeatherMapRepository struct {
	BaseURL     string
	APIKey      string
	MorningHour int
	httpClient  HTTPClient
	l           *observe.Logger
}

func NewOpenWeatherMapRepository(baseURL, apiKey string, morningHour int, l *observe.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}

	return &OpenWeatherMapRepository{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		MorningHour: morningHour,
		httpClient:  httpClient,
		l:           l,
	}, nil
}

func (w *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

type OpenWeatherMapResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

func (w *OpenWeatherMapRepository) FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) ([]models.WeatherRecord, []models.WeatherRecord, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&units=metric&appid=%s", w.BaseURL, lat, lon, w.APIKey)

	w.l.Info("making openweathermap API request", map[string]any{
		"lat": lat, "lon": lon,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response OpenWeatherMapResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(response.List) == 0 {
		return nil, nil, fmt.Errorf("no forecast data available")
	}

	records, err := w.morningRecords(response)
	if err != nil {
		return nil, nil, err
	}

	w.l.Info("parsed API response", map[string]any{
		"steps": len(response.List),
		"days":  len(records),
	})

	// This feed has no archive; anything before today is discarded and the
	// timeline builder degrades those days to placeholders.
	_, forecast := splitByToday(records, today)
	return nil, forecast, nil
}

// morningRecords picks, per day, the 3-hour step closest to the morning hour.
func (w *OpenWeatherMapRepository) morningRecords(response OpenWeatherMapResponse) ([]models.WeatherRecord, error) {
	type candidate struct {
		rec  models.WeatherRecord
		dist int
	}
	best := make(map[time.Time]candidate)
	var order []time.Time

	for _, item := range response.List {
		t, err := time.Parse(openWeatherMapStepLayout, item.DtTxt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dt_txt %s: %w", item.DtTxt, err)
		}

		day := models.Day(t)
		dist := t.Hour() - w.MorningHour
		if dist < 0 {
			dist = -dist
		}

		prev, seen := best[day]
		if seen && prev.dist <= dist {
			continue
		}
		if !seen {
			order = append(order, day)
		}

		temp := item.Main.Temp
		humidity := item.Main.Humidity
		dew := dewPointC(temp, humidity)
		// OWM reports wind in m/s with metric units.
		wind := item.Wind.Speed * 3.6

		best[day] = candidate{
			rec: models.WeatherRecord{
				Date:         day,
				TemperatureC: &temp,
				DewPointC:    &dew,
				HumidityPct:  &humidity,
				WindKph:      &wind,
			},
			dist: dist,
		}
	}

	records := make([]models.WeatherRecord, 0, len(order))
	for _, day := range order {
		records = append(records, best[day].rec)
	}
	return records, nil
}

// dewPointC approximates the dew point from temperature and relative humidity
// with the Magnus-Tetens formula.
func dewPointC(tempC, humidityPct float64) float64 {
	if humidityPct <= 0 {
		humidityPct = 0.1
	}
	gamma := math.Log(humidityPct/100) + magnusA*tempC/(magnusB+tempC)
	return magnusB * gamma / (magnusA - gamma)
}
