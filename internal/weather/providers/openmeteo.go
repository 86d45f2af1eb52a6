package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/httpx"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// OpenMeteoProvider implements weather.Provider against Open-Meteo, which
// requires no API key and is therefore the primary source.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Current(ctx context.Context, lat, lon float64) (weather.Reading, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m")
		values.Set("timezone", "auto")
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    int     `json:"relative_humidity_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			WeatherCode int     `json:"weather_code"`
			WindSpeed   float64 `json:"wind_speed_10m"` // km/h
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}

	cur := payload.Current
	condition, description, icon := weather.FromWMO(cur.WeatherCode)

	return weather.Reading{
		Provider:    p.name,
		Temp:        round1(cur.Temperature),
		FeelsLike:   round1(cur.FeelsLike),
		Humidity:    cur.Humidity,
		Condition:   condition,
		Description: description,
		Icon:        icon,
		WindSpeed:   round1(cur.WindSpeed / 3.6), // km/h to m/s
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
