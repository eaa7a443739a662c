package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"frostcast/config"
	"frostcast/internal/services/frost"
	"frostcast/pkg/observe"
)

type routes struct {
	service *frost.Service
	cfg     *config.Config
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	service *frost.Service,
	cfg *config.Config,
	l *observe.Logger,
) {
	r := &routes{
		service: service,
		cfg:     cfg,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/report", r.handleReport)
	app.Get("/vehicles", r.handleVehicles)
	app.Get("/locations/search", r.handleLocationSearch)
}
