package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"frostcast/internal/models"
)

type Config struct {
	AppName    string `envconfig:"APP_NAME" default:"frostcast"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	Port       string `envconfig:"PORT" default:"8080"`
	SentryDSN  string `envconfig:"SENTRY_DSN" default:""`

	HistoryDays  int `envconfig:"HISTORY_DAYS" default:"5"`
	ForecastDays int `envconfig:"FORECAST_DAYS" default:"5"`
	MorningHour  int `envconfig:"MORNING_HOUR" default:"7"`

	CacheTTLSeconds int     `envconfig:"CACHE_TTL_SECONDS" default:"3600"`
	RateLimitRPS    float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	RateLimitBurst  int     `envconfig:"RATE_LIMIT_BURST" default:"4"`

	WeatherAPIs []WeatherAPIConfig `yaml:"weather_apis"`
	Vehicles    []VehicleConfig    `yaml:"vehicles"`
}

type WeatherAPIConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
}

type VehicleConfig struct {
	Name            string  `yaml:"name"`
	BaseLeadMinutes float64 `yaml:"base_lead_minutes"`
	SizeFactor      float64 `yaml:"size_factor"`
}

const DefaultConfigPath = "config/config.yaml"

// defaultVehicles keeps the server usable without a config file.
var defaultVehicles = []VehicleConfig{
	{Name: "Mini", BaseLeadMinutes: 4, SizeFactor: 1.0},
	{Name: "Saloon", BaseLeadMinutes: 5, SizeFactor: 1.2},
	{Name: "SUV", BaseLeadMinutes: 6, SizeFactor: 1.4},
	{Name: "Van", BaseLeadMinutes: 8, SizeFactor: 1.6},
}

func NewConfig() *Config {
	return NewConfigFromFile(DefaultConfigPath)
}

func NewConfigFromFile(path string) *Config {
	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("failed to parse YAML config: %v", err))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	if len(cnf.WeatherAPIs) == 0 {
		cnf.WeatherAPIs = []WeatherAPIConfig{{Name: "open-meteo"}}
	}
	if len(cnf.Vehicles) == 0 {
		cnf.Vehicles = defaultVehicles
	}

	return &cnf
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// VehicleByName resolves a catalog entry, case-sensitively. The second return
// is false for names outside the catalog; callers must reject those before
// asking for a report.
func (c *Config) VehicleByName(name string) (models.VehicleProfile, bool) {
	for _, v := range c.Vehicles {
		if v.Name == name {
			return models.VehicleProfile{
				Name:            v.Name,
				BaseLeadMinutes: v.BaseLeadMinutes,
				SizeFactor:      v.SizeFactor,
			}, true
		}
	}
	return models.VehicleProfile{}, false
}

// VehicleProfiles returns the catalog in declaration order; the first entry is
// the default vehicle.
func (c *Config) VehicleProfiles() []models.VehicleProfile {
	profiles := make([]models.VehicleProfile, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		profiles = append(profiles, models.VehicleProfile{
			Name:            v.Name,
			BaseLeadMinutes: v.BaseLeadMinutes,
			SizeFactor:      v.SizeFactor,
		})
	}
	return profiles
}
