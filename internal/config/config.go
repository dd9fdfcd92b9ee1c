package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"pharmanear/m/domain"
)

// Config holds application configuration values.
type Config struct {
	Secret          string
	DatabaseDSN     string
	HTTPPort        string
	DefaultLocation domain.Location
	DefaultRadiusKm float64
	MedicineCSV     string
	LogLevel        string
	AllowedOrigins  []string
}

var envKeys = map[string][]string{
	"secret":            {"PHARMANEAR_SECRET", "SECRET"},
	"database_dsn":      {"PHARMANEAR_DATABASE_DSN", "DATABASE_DSN"},
	"http_port":         {"PHARMANEAR_HTTP_PORT", "HTTP_PORT"},
	"default_lat":       {"PHARMANEAR_DEFAULT_LAT"},
	"default_lng":       {"PHARMANEAR_DEFAULT_LNG"},
	"default_radius_km": {"PHARMANEAR_DEFAULT_RADIUS_KM"},
	"medicine_csv":      {"PHARMANEAR_MEDICINE_CSV"},
	"log_level":         {"PHARMANEAR_LOG_LEVEL", "LOG_LEVEL"},
	"allowed_origins":   {"PHARMANEAR_ALLOWED_ORIGINS"},
}

// Load reads configuration from a .env file, an optional YAML config file
// and environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("secret", "dev_secret")
	v.SetDefault("database_dsn", "file:pharmanear?mode=memory&cache=shared")
	v.SetDefault("http_port", "8080")
	v.SetDefault("default_lat", 12.9716)
	v.SetDefault("default_lng", 77.5946)
	v.SetDefault("default_radius_km", 5.0)
	v.SetDefault("medicine_csv", "assets/medicines.csv")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", "*")

	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	port := v.GetString("http_port")
	if _, err := strconv.Atoi(port); err != nil {
		logrus.Warnf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	cfg := Config{
		Secret:      v.GetString("secret"),
		DatabaseDSN: v.GetString("database_dsn"),
		HTTPPort:    port,
		DefaultLocation: domain.Location{
			Lat: v.GetFloat64("default_lat"),
			Lng: v.GetFloat64("default_lng"),
		},
		DefaultRadiusKm: v.GetFloat64("default_radius_km"),
		MedicineCSV:     v.GetString("medicine_csv"),
		LogLevel:        v.GetString("log_level"),
		AllowedOrigins:  splitList(v.GetString("allowed_origins")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values the service cannot run without.
func (c Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database_dsn is required")
	}
	if err := c.DefaultLocation.Validate(); err != nil {
		return fmt.Errorf("default location: %w", err)
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default_radius_km must be positive, got %v", c.DefaultRadiusKm)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
