package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"frostcast/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat or q"`
}

// GetReport godoc
// @Summary Get windscreen report
// @Description Builds the 11-day windscreen condition report for a location and vehicle
// @Tags Report
// @Accept json
// @Produce json
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(51.5072)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(-0.1276)
// @Param q query string false "Free-text location (UK postcode or city name), used when lat/lon are absent" example(SW1A 1AA)
// @Param vehicle query string false "Vehicle name from the catalog (default: first catalog entry)" example(Van)
// @Success 200 {object} models.Report "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Router /report [get]
func (r *routes) handleReport(c *fiber.Ctx) error {
	loc, errResp := r.resolveLocation(c)
	if errResp != nil {
		return errResp(c)
	}

	vehicleName := c.Query("vehicle")
	if vehicleName == "" {
		vehicleName = r.cfg.Vehicles[0].Name
	}
	vehicle, ok := r.cfg.VehicleByName(vehicleName)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Unknown vehicle: " + vehicleName,
		})
	}

	report := r.service.Report(c.Context(), loc, vehicle, time.Now())
	return c.JSON(report)
}

// GetVehicles godoc
// @Summary List vehicle catalog
// @Description Returns the configured vehicle profiles
// @Tags Report
// @Produce json
// @Success 200 {array} models.VehicleProfile "Successful response"
// @Router /vehicles [get]
func (r *routes) handleVehicles(c *fiber.Ctx) error {
	return c.JSON(r.cfg.VehicleProfiles())
}

// SearchLocation godoc
// @Summary Search for a location
// @Description Resolves a UK postcode or city name to coordinates
// @Tags Report
// @Produce json
// @Param q query string true "UK postcode or city name" example(London)
// @Success 200 {object} models.Location "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing query"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Router /locations/search [get]
func (r *routes) handleLocationSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: q",
		})
	}

	loc, err := r.service.Locate(c.Context(), query)
	if err != nil {
		r.l.Warning("location not found", map[string]any{"query": query, "err": err.Error()})
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Location not found",
		})
	}

	return c.JSON(loc)
}

// resolveLocation reads either lat/lon or a q parameter from the request. The
// second return, when non-nil, writes the error response.
func (r *routes) resolveLocation(c *fiber.Ctx) (models.Location, func(*fiber.Ctx) error) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	query := c.Query("q")

	if lat == "" && lon == "" && query != "" {
		loc, err := r.service.Locate(c.Context(), query)
		if err != nil {
			r.l.Warning("location not found", map[string]any{"query": query, "err": err.Error()})
			return models.Location{}, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Location not found"})
			}
		}
		return loc, nil
	}

	if lat == "" || lon == "" {
		return models.Location{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Missing required parameter: lat or q",
			})
		}
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Location{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid latitude format"})
		}
	}
	if latFloat < -90 || latFloat > 90 {
		return models.Location{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Latitude must be between -90 and 90"})
		}
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Location{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid longitude format"})
		}
	}
	if lonFloat < -180 || lonFloat > 180 {
		return models.Location{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Longitude must be between -180 and 180"})
		}
	}

	return models.Location{
		Name: lat + "," + lon,
		Lat:  latFloat,
		Lon:  lonFloat,
	}, nil
}
