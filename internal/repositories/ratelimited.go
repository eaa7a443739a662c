package repositories

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"frostcast/internal/models"
)

// RateLimitedWeatherRepository keeps the service polite toward free upstream
// APIs. rps may be fractional for slower-than-one-per-second limits.
type RateLimitedWeatherRepository struct {
	source  WeatherRepository
	limiter *rate.Limiter
}

func NewRateLimitedWeatherRepository(source WeatherRepository, rps float64, burst int) *RateLimitedWeatherRepository {
	return &RateLimitedWeatherRepository{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedWeatherRepository) Name() string {
	return r.source.Name()
}

func (r *RateLimitedWeatherRepository) FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) ([]models.WeatherRecord, []models.WeatherRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchRecords(ctx, lat, lon, today, historyDays, forecastDays)
}
