package frost_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frostcast/internal/models"
	"frostcast/internal/services/frost"
)

var testVan = models.VehicleProfile{Name: "Van", BaseLeadMinutes: 8, SizeFactor: 1.6}

func record(tempC, dewC, humidity, wind *float64) models.WeatherRecord {
	return models.WeatherRecord{
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		TemperatureC: tempC,
		DewPointC:    dewC,
		HumidityPct:  humidity,
		WindKph:      wind,
		Source:       models.SourceForecast,
	}
}

func TestClassify_Ice(t *testing.T) {
	rec := record(models.Float(-2), models.Float(-3), models.Float(85), models.Float(2))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionIce, result.Condition)
	assert.InDelta(t, 8*1.6*1.5, result.LeadMinutes, 1e-9)
	assert.Equal(t, rec.Date, result.Date)
}

func TestClassify_Frost(t *testing.T) {
	// Depression of exactly 1.0 at 2°C: cold and near saturation, but wind
	// keeps it out of the fog rule (which never gets evaluated anyway).
	rec := record(models.Float(2), models.Float(1), models.Float(60), models.Float(10))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionFrost, result.Condition)
	assert.InDelta(t, 8*1.6, result.LeadMinutes, 1e-9)
}

func TestClassify_Fog(t *testing.T) {
	rec := record(models.Float(5), models.Float(5), models.Float(95), models.Float(3))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionFog, result.Condition)
	assert.InDelta(t, 8.0, result.LeadMinutes, 1e-9)
}

func TestClassify_Clear(t *testing.T) {
	rec := record(models.Float(10), models.Float(5), models.Float(50), models.Float(20))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionClear, result.Condition)
	assert.InDelta(t, 8.0, result.LeadMinutes, 1e-9)
}

func TestClassify_IceBeatsFrost(t *testing.T) {
	// Satisfies both the ice rule (temp <= 0, humidity >= 80) and the frost
	// rule (temp <= 3, depression <= 2); ice must win.
	rec := record(models.Float(-1), models.Float(-2), models.Float(90), models.Float(2))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionIce, result.Condition)
}

func TestClassify_UnknownTemperatureFailsSafe(t *testing.T) {
	rec := record(nil, models.Float(-2), models.Float(95), models.Float(1))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionClear, result.Condition)
	assert.InDelta(t, testVan.BaseLeadMinutes, result.LeadMinutes, 1e-9)
}

func TestClassify_UnknownDewPointFailsSafe(t *testing.T) {
	rec := record(models.Float(-5), nil, models.Float(95), models.Float(1))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionClear, result.Condition)
	assert.InDelta(t, testVan.BaseLeadMinutes, result.LeadMinutes, 1e-9)
}

func TestClassify_UnknownWindCountsAsCalm(t *testing.T) {
	rec := record(models.Float(5), models.Float(4.5), models.Float(90), nil)

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionFog, result.Condition)
}

func TestClassify_UnknownHumidityCannotFreeze(t *testing.T) {
	// Freezing and near saturation, but without a humidity reading the ice
	// rule cannot fire; the frost rule still catches it.
	rec := record(models.Float(-2), models.Float(-3), nil, models.Float(10))

	result := frost.Classify(rec, testVan)

	assert.Equal(t, models.ConditionFrost, result.Condition)
}

func TestClassify_MonotonicAcrossTemperatureThresholds(t *testing.T) {
	// Fixed humidity and depression; dropping the temperature through the
	// 3°C and 0°C thresholds walks clear -> frost -> ice.
	humidity := models.Float(90)
	wind := models.Float(10) // keeps the fog rule out of the way

	steps := []struct {
		tempC float64
		want  models.Condition
	}{
		{5, models.ConditionClear},
		{3, models.ConditionFrost},
		{2, models.ConditionFrost},
		{0, models.ConditionIce},
		{-4, models.ConditionIce},
	}

	rank := map[models.Condition]int{
		models.ConditionClear: 0,
		models.ConditionFrost: 1,
		models.ConditionIce:   2,
	}

	prev := -1
	for _, step := range steps {
		rec := record(models.Float(step.tempC), models.Float(step.tempC-1), humidity, wind)
		result := frost.Classify(rec, testVan)

		assert.Equal(t, step.want, result.Condition, "temp %.1f", step.tempC)
		assert.GreaterOrEqual(t, rank[result.Condition], prev, "severity regressed at %.1f", step.tempC)
		prev = rank[result.Condition]
	}
}

func TestClassify_LeadMinutesOrdering(t *testing.T) {
	vehicles := []models.VehicleProfile{
		{Name: "Mini", BaseLeadMinutes: 4, SizeFactor: 1.0},
		{Name: "Van", BaseLeadMinutes: 8, SizeFactor: 1.6},
	}

	clear := record(models.Float(10), models.Float(5), models.Float(50), models.Float(20))
	frosty := record(models.Float(2), models.Float(1), models.Float(60), models.Float(10))
	icy := record(models.Float(-2), models.Float(-3), models.Float(85), models.Float(2))

	for _, v := range vehicles {
		clearLead := frost.Classify(clear, v).LeadMinutes
		frostLead := frost.Classify(frosty, v).LeadMinutes
		iceLead := frost.Classify(icy, v).LeadMinutes

		assert.LessOrEqual(t, clearLead, frostLead, v.Name)
		assert.LessOrEqual(t, frostLead, iceLead, v.Name)
	}
}
