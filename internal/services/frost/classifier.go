package frost

import (
	"math"

	"frostcast/internal/models"
)

// Classification thresholds. Tuned against the behaviour of the morning
// frost heuristics the catalog of delays was derived from.
const (
	// IceTempMaxC and IceHumidityMinPct gate the ice rule: freezing air
	// close to saturation deposits ice on glass.
	IceTempMaxC       = 0.0
	IceHumidityMinPct = 80.0

	// FrostTempMaxC and FrostDepressionMaxC gate the frost rule: a small
	// dew-point depression at a cold temperature means the air is near
	// saturation and the screen radiates below the dew point overnight.
	FrostTempMaxC       = 3.0
	FrostDepressionMaxC = 2.0

	// FogDepressionMaxC and FogWindMaxKph gate the fog rule: saturated,
	// still air above freezing mists the screen rather than frosting it.
	FogDepressionMaxC = 1.0
	FogWindMaxKph     = 5.0

	// IceLeadFactor is the extra margin ice demands beyond frost.
	IceLeadFactor = 1.5
)

// Classify labels one record and computes the departure buffer for the given
// vehicle. Rules are evaluated in fixed priority order, first match wins, so a
// day that is both freezing and humid comes out as ice rather than frost.
// Records with unknown temperature or dew point classify as clear with the
// baseline buffer: no risk can be assessed, so fail toward the calm answer.
func Classify(rec models.WeatherRecord, vehicle models.VehicleProfile) models.ConditionResult {
	condition := classifyCondition(rec)

	lead := vehicle.BaseLeadMinutes
	switch condition {
	case models.ConditionFrost:
		lead = vehicle.BaseLeadMinutes * vehicle.SizeFactor
	case models.ConditionIce:
		lead = vehicle.BaseLeadMinutes * vehicle.SizeFactor * IceLeadFactor
	}

	return models.ConditionResult{
		Date:        rec.Date,
		Condition:   condition,
		LeadMinutes: lead,
	}
}

func classifyCondition(rec models.WeatherRecord) models.Condition {
	if rec.TemperatureC == nil || rec.DewPointC == nil {
		return models.ConditionClear
	}

	temp := *rec.TemperatureC
	depression := temp - *rec.DewPointC

	// Unknown humidity cannot satisfy the ice rule; the frost rule below
	// still catches cold saturated air.
	if temp <= IceTempMaxC && rec.HumidityPct != nil && *rec.HumidityPct >= IceHumidityMinPct {
		return models.ConditionIce
	}

	if temp <= FrostTempMaxC && depression <= FrostDepressionMaxC {
		return models.ConditionFrost
	}

	if math.Abs(depression) <= FogDepressionMaxC && (rec.WindKph == nil || *rec.WindKph <= FogWindMaxKph) {
		return models.ConditionFog
	}

	return models.ConditionClear
}
