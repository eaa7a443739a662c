package frost

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"frostcast/internal/models"
	"frostcast/internal/repositories"
	"frostcast/pkg/observe"
)

// Service assembles windscreen reports: fetch weather, build the timeline,
// classify every day for the chosen vehicle.
type Service struct {
	repos        []repositories.WeatherRepository
	geo          repositories.GeocodeRepository
	historyDays  int
	forecastDays int
	l            *observe.Logger
}

func NewService(repos []repositories.WeatherRepository, geo repositories.GeocodeRepository, historyDays, forecastDays int, l *observe.Logger) *Service {
	return &Service{
		repos:        repos,
		geo:          geo,
		historyDays:  historyDays,
		forecastDays: forecastDays,
		l:            l,
	}
}

// Locate resolves a free-text location query.
func (s *Service) Locate(ctx context.Context, query string) (models.Location, error) {
	if s.geo == nil {
		return models.Location{}, errors.New("no geocoding repository configured")
	}
	return s.geo.Resolve(ctx, query)
}

// Report produces the full assessment for one location and vehicle. Providers
// are tried in configured order and the first successful answer wins; when all
// of them fail the report is still produced from empty inputs, which the
// timeline builder fills with placeholders and the classifier grades as clear
// with the baseline buffer.
func (s *Service) Report(ctx context.Context, loc models.Location, vehicle models.VehicleProfile, today time.Time) models.Report {
	today = models.Day(today)

	s.l.Info("starting report", map[string]any{
		"location": loc.Name,
		"lat":      loc.Lat,
		"lon":      loc.Lon,
		"vehicle":  vehicle.Name,
		"today":    today.Format("2006-01-02"),
	})

	historical, forecast := s.fetchRecords(ctx, loc, today)

	timeline := BuildTimeline(historical, forecast, today, s.historyDays, s.forecastDays)

	report := models.Report{
		Location: loc,
		Vehicle:  vehicle,
		Today:    today,
		Days:     make([]models.Assessment, 0, len(timeline)),
	}

	tomorrow := today.AddDate(0, 0, 1)
	for _, rec := range timeline {
		assessment := models.Assessment{
			Record: rec,
			Result: Classify(rec, vehicle),
		}
		report.Days = append(report.Days, assessment)

		if rec.Date.Equal(tomorrow) {
			hit := assessment
			report.Tomorrow = &hit
		}
	}

	s.l.Info("completed report", map[string]any{
		"location": loc.Name,
		"days":     len(report.Days),
	})

	return report
}

func (s *Service) fetchRecords(ctx context.Context, loc models.Location, today time.Time) (historical, forecast []models.WeatherRecord) {
	if len(s.repos) == 0 {
		s.l.Error(errors.New("no weather repositories configured"))
		return nil, nil
	}

	for _, repo := range s.repos {
		h, f, err := repo.FetchRecords(ctx, loc.Lat, loc.Lon, today, s.historyDays, s.forecastDays)
		if err != nil {
			s.l.Warning("failed to fetch records", map[string]any{"repo": repo.Name(), "err": err.Error()})
			continue
		}

		s.l.Info("fetched records", map[string]any{
			"repo":       repo.Name(),
			"historical": len(h),
			"forecast":   len(f),
		})
		return h, f
	}

	s.l.Error(errors.New("all weather repositories failed"), map[string]any{
		"lat": loc.Lat,
		"lon": loc.Lon,
	})
	return nil, nil
}
