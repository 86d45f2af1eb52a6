package weather

import "context"

// Reading is a single provider's normalized current-conditions result.
// City and country are filled in by the service from geocoding.
type Reading struct {
	Provider    string
	Temp        float64
	FeelsLike   float64
	Humidity    int
	Condition   string
	Description string
	Icon        string
	WindSpeed   float64 // m/s
}

// Provider abstracts a current-conditions source (Open-Meteo, OpenWeatherMap).
type Provider interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (Reading, error)
}
