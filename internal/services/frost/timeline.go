package frost

import (
	"sort"
	"time"

	"frostcast/internal/models"
)

// BuildTimeline merges historical and forecast records into one daily sequence
// covering [today-historyDays, today+forecastDays]. Records outside the window
// are dropped, days missing from both inputs are filled with all-unknown
// placeholders, and when both inputs carry the same date the observed record
// wins. The result always holds historyDays+forecastDays+1 entries, sorted by
// date ascending.
func BuildTimeline(historical, forecast []models.WeatherRecord, today time.Time, historyDays, forecastDays int) models.Timeline {
	today = models.Day(today)

	observed := make(map[time.Time]models.WeatherRecord, len(historical))
	for _, rec := range historical {
		day := models.Day(rec.Date)
		// Observed readings may run up to and including today.
		if day.Before(today.AddDate(0, 0, -historyDays)) || day.After(today) {
			continue
		}
		rec.Date = day
		rec.Source = models.SourceObserved
		observed[day] = rec
	}

	predicted := make(map[time.Time]models.WeatherRecord, len(forecast))
	for _, rec := range forecast {
		day := models.Day(rec.Date)
		if day.Before(today) || day.After(today.AddDate(0, 0, forecastDays)) {
			continue
		}
		rec.Date = day
		rec.Source = models.SourceForecast
		predicted[day] = rec
	}

	timeline := make(models.Timeline, 0, historyDays+forecastDays+1)
	for offset := -historyDays; offset <= forecastDays; offset++ {
		day := today.AddDate(0, 0, offset)

		if rec, ok := observed[day]; ok {
			timeline = append(timeline, rec)
			continue
		}
		if rec, ok := predicted[day]; ok {
			timeline = append(timeline, rec)
			continue
		}

		source := models.SourceForecast
		if day.Before(today) {
			source = models.SourceObserved
		}
		timeline = append(timeline, models.WeatherRecord{Date: day, Source: source})
	}

	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date.Before(timeline[j].Date)
	})

	return timeline
}
