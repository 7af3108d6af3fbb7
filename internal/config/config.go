// Package config loads runtime configuration from the environment (and an optional .env file).
package config

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ngmaloney/volunteer-terminal/internal/database"
	"github.com/ngmaloney/volunteer-terminal/internal/mapview"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Default map viewport (Accra)
const (
	DefaultCenterLat = 5.603717
	DefaultCenterLon = -0.186964
	DefaultZoom      = 10.0
	DefaultMapStyle  = "mapbox://styles/mapbox/streets-v11"
)

// Config holds all application configuration
type Config struct {
	DataSource string // file path or http(s) URL of the opportunities document
	DBPath     string
	ExportDir  string
	DebugLog   string // file to log to; empty disables logging in the TUI

	MapboxToken  string
	MapStyle     string
	MapCenterLat float64
	MapCenterLon float64
	MapZoom      float64

	Categories []string
}

type categoryFile struct {
	Categories []string `yaml:"categories"`
}

// Load reads the .env file (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	categories, err := parseCategories(categoriesYAML)
	if err != nil {
		return nil, err
	}

	return &Config{
		DataSource: getEnv("VOLUNTEER_DATA_SOURCE", "data/opportunities.json"),
		DBPath:     getEnv("VOLUNTEER_DB_PATH", database.DBPath()),
		ExportDir:  getEnv("VOLUNTEER_EXPORT_DIR", "exports"),
		DebugLog:   os.Getenv("VOLUNTEER_DEBUG_LOG"),

		MapboxToken:  os.Getenv("MAPBOX_ACCESS_TOKEN"),
		MapStyle:     getEnv("MAPBOX_STYLE", DefaultMapStyle),
		MapCenterLat: getEnvFloat("MAP_CENTER_LAT", DefaultCenterLat),
		MapCenterLon: getEnvFloat("MAP_CENTER_LON", DefaultCenterLon),
		MapZoom:      getEnvFloat("MAP_ZOOM", DefaultZoom),

		Categories: categories,
	}, nil
}

// MapOptions returns the map configuration with the access token injected
func (c *Config) MapOptions() mapview.Options {
	return mapview.Options{
		AccessToken: c.MapboxToken,
		Style:       c.MapStyle,
		Center:      mapview.Coordinate{Lat: c.MapCenterLat, Lon: c.MapCenterLon},
		Zoom:        c.MapZoom,
	}
}

func parseCategories(data []byte) ([]string, error) {
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("parsing categories: no categories defined")
	}
	return f.Categories, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		log.Printf("[config] ignoring invalid %s=%q", key, val)
	}
	return fallback
}
