package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"frostcast/internal/models"
	"frostcast/pkg/observe"
)

// CachedWeatherRepository wraps a WeatherRepository with a TTL cache, so
// repeated renders for the same spot within an hour reuse the upstream
// response instead of refetching it.
type CachedWeatherRepository struct {
	source   WeatherRepository
	cache    map[string]cacheEntry
	mutex    sync.RWMutex
	ttl      time.Duration
	l        *observe.Logger
	hitCount int
}

type cacheEntry struct {
	historical []models.WeatherRecord
	forecast   []models.WeatherRecord
	timestamp  time.Time
}

func NewCachedWeatherRepository(source WeatherRepository, ttl time.Duration, l *observe.Logger) *CachedWeatherRepository {
	return &CachedWeatherRepository{
		source: source,
		cache:  make(map[string]cacheEntry),
		ttl:    ttl,
		l:      l,
	}
}

func (c *CachedWeatherRepository) Name() string {
	return c.source.Name()
}

func (c *CachedWeatherRepository) FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) ([]models.WeatherRecord, []models.WeatherRecord, error) {
	// Today is part of the key: a cached answer for yesterday's window must
	// not serve a new day.
	key := fmt.Sprintf("%.4f:%.4f:%s:%d:%d", lat, lon, models.Day(today).Format("2006-01-02"), historyDays, forecastDays)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && time.Since(entry.timestamp) < c.ttl {
		c.mutex.Lock()
		c.hitCount++
		c.mutex.Unlock()

		c.l.Debug("weather cache hit", map[string]any{
			"repo": c.source.Name(),
			"key":  key,
			"age":  time.Since(entry.timestamp).Round(time.Second).String(),
		})
		return entry.historical, entry.forecast, nil
	}

	historical, forecast, err := c.source.FetchRecords(ctx, lat, lon, today, historyDays, forecastDays)
	if err != nil {
		return nil, nil, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{
		historical: historical,
		forecast:   forecast,
		timestamp:  time.Now(),
	}
	c.mutex.Unlock()

	return historical, forecast, nil
}

// Hits reports how many fetches were served from cache.
func (c *CachedWeatherRepository) Hits() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hitCount
}
