package repositories

import (
	"context"
	"net/http"
	"time"

	"frostcast/config"
	"frostcast/internal/models"
	"frostcast/pkg/observe"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository supplies the raw material for a timeline: morning weather
// records split into observed history (dates before today) and forecast
// (today onward). Implementations never read the clock; today comes in.
type WeatherRepository interface {
	Name() string
	FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) (historical, forecast []models.WeatherRecord, err error)
}

// GeocodeRepository resolves a free-text location query to coordinates.
type GeocodeRepository interface {
	Resolve(ctx context.Context, query string) (models.Location, error)
}

// InitWeatherRepositories builds the configured providers, each wrapped with a
// rate limiter and a response cache so one render cycle per hour hits the
// upstream at most once.
func InitWeatherRepositories(cfg *config.Config, l *observe.Logger) []WeatherRepository {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var repos []WeatherRepository
	for _, api := range cfg.WeatherAPIs {
		var repo WeatherRepository

		switch api.Name {
		case "open-meteo":
			repo = NewOpenMeteoRepository(api.BaseURL, cfg.MorningHour, l, http.DefaultClient)
		case "openweathermap":
			owm, err := NewOpenWeatherMapRepository(api.BaseURL, api.APIKey, cfg.MorningHour, l, http.DefaultClient)
			if err != nil {
				l.Warning("skipping openweathermap provider", map[string]any{"err": err.Error()})
				continue
			}
			repo = owm
			// Add more cases here to extend the provider list.
		default:
			l.Warning("unknown weather provider in config", map[string]any{"name": api.Name})
			continue
		}

		repo = NewRateLimitedWeatherRepository(repo, cfg.RateLimitRPS, cfg.RateLimitBurst)
		repo = NewCachedWeatherRepository(repo, ttl, l)
		repos = append(repos, repo)
	}

	return repos
}
