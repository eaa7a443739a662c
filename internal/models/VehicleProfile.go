package models

// VehicleProfile describes how long a given vehicle takes to clear.
// BaseLeadMinutes is the buffer with a clear windscreen; SizeFactor scales the
// extra time when frost or ice has to be removed (never below 1).
type VehicleProfile struct {
	Name            string  `json:"name" example:"Van"`
	BaseLeadMinutes float64 `json:"base_lead_minutes" example:"8"`
	SizeFactor      float64 `json:"size_factor" example:"1.6"`
}
