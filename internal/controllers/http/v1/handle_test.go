package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frostcast/config"
	"frostcast/internal/models"
	"frostcast/internal/repositories"
	"frostcast/internal/services/frost"
	"frostcast/pkg/httpserver"
	"frostcast/pkg/observe"
)

type stubWeatherRepository struct{}

func (stubWeatherRepository) Name() string { return "stub" }

func (stubWeatherRepository) FetchRecords(ctx context.Context, lat, lon float64, today time.Time, historyDays, forecastDays int) ([]models.WeatherRecord, []models.WeatherRecord, error) {
	return nil, []models.WeatherRecord{{
		Date:         models.Day(today),
		TemperatureC: models.Float(-2),
		DewPointC:    models.Float(-3),
		HumidityPct:  models.Float(85),
		WindKph:      models.Float(2),
	}}, nil
}

type stubGeocoder struct {
	fail bool
}

func (s stubGeocoder) Resolve(ctx context.Context, query string) (models.Location, error) {
	if s.fail {
		return models.Location{}, errors.New("not found")
	}
	return models.Location{Name: "London, United Kingdom", Lat: 51.5072, Lon: -0.1276}, nil
}

type testApp struct {
	app *fiber.App
}

func newTestApp(t *testing.T, geo repositories.GeocodeRepository) *testApp {
	t.Helper()

	cfg := config.NewConfigFromFile("nonexistent.yaml")
	l := observe.NewZapLogger("test-app")
	service := frost.NewService([]repositories.WeatherRepository{stubWeatherRepository{}}, geo, cfg.HistoryDays, cfg.ForecastDays, l)

	app := httpserver.InitFiberServer(cfg.AppName)
	NewRouter(app, service, cfg, l)

	return &testApp{app: app}
}

func (f *testApp) get(t *testing.T, path string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	resp, err := f.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func TestHandleReport_MissingParams(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "lat or q")
}

func TestHandleReport_InvalidLatitude(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?lat=abc&lon=0")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp = app.get(t, "/report?lat=95&lon=0")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestHandleReport_InvalidLongitude(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?lat=51.5&lon=190")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestHandleReport_UnknownVehicle(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?lat=51.5&lon=-0.12&vehicle=Tank")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "Tank")
}

func TestHandleReport_Success(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?lat=51.5&lon=-0.12&vehicle=Van")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Equal(t, "Van", report.Vehicle.Name)
	assert.Len(t, report.Days, 11)

	// Today's record came from the stub; it must classify as ice.
	var todayResult *models.ConditionResult
	for i := range report.Days {
		if report.Days[i].Record.Date.Equal(report.Today) {
			todayResult = &report.Days[i].Result
		}
	}
	require.NotNil(t, todayResult)
	assert.Equal(t, models.ConditionIce, todayResult.Condition)
}

func TestHandleReport_DefaultVehicle(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?lat=51.5&lon=-0.12")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "Mini", report.Vehicle.Name)
}

func TestHandleReport_GeocodedQuery(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/report?q=London")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "London, United Kingdom", report.Location.Name)
}

func TestHandleReport_GeocodeFailure(t *testing.T) {
	app := newTestApp(t, stubGeocoder{fail: true})

	resp := app.get(t, "/report?q=nowhereville")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestHandleVehicles(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/vehicles")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var vehicles []models.VehicleProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vehicles))
	require.Len(t, vehicles, 4)
	assert.Equal(t, "Mini", vehicles[0].Name)
}

func TestHandleLocationSearch(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/locations/search?q=London")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var loc models.Location
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loc))
	assert.Equal(t, "London, United Kingdom", loc.Name)
}

func TestHandleLocationSearch_MissingQuery(t *testing.T) {
	app := newTestApp(t, stubGeocoder{})

	resp := app.get(t, "/locations/search")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestHandleLocationSearch_NotFound(t *testing.T) {
	app := newTestApp(t, stubGeocoder{fail: true})

	resp := app.get(t, "/locations/search?q=nowhereville")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}
