package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything read from the environment.
type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	// Provider keys. All optional; missing keys degrade the matching
	// service to its fallback behavior.
	OpenWeatherAPIKey string
	NewsAPIKey        string
	GeminiAPIKey      string
	TomTomAPIKey      string
	GoogleMapsAPIKey  string

	// Persistence. MongoURI empty means local-only preferences and no
	// durable conversations.
	MongoURI      string
	MongoDatabase string
	PrefsPath     string

	AllowedOrigins string

	// Warm-cache scheduler; empty WarmCities disables it.
	WarmCities   []string
	WarmInterval time.Duration

	TrafficCacheTTL time.Duration
	GeoCacheTTL     time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:              getenvDefault("PORT", "8080"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		NewsAPIKey:        os.Getenv("NEWS_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		TomTomAPIKey:      os.Getenv("TOMTOM_API_KEY"),
		GoogleMapsAPIKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getenvDefault("MONGO_DATABASE", "daymate"),
		PrefsPath:         getenvDefault("PREFS_PATH", "data/preferences.json"),
		AllowedOrigins:    getenvDefault("ALLOWED_ORIGINS", "*"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.TrafficCacheTTL, err = getenvDuration("TRAFFIC_CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.GeoCacheTTL, err = getenvDuration("GEO_CACHE_TTL", "24h"); err != nil {
		return nil, err
	}

	if cities := os.Getenv("WARM_CITIES"); cities != "" {
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.WarmCities = append(cfg.WarmCities, c)
			}
		}
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
