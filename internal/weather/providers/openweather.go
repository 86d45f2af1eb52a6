package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/httpx"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap.
// It is the keyed secondary source consulted when Open-Meteo is down.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Current(ctx context.Context, lat, lon float64) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"` // already m/s with metric units
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}

	reading := weather.Reading{
		Provider:  p.name,
		Temp:      round1(payload.Main.Temp),
		FeelsLike: round1(payload.Main.FeelsLike),
		Humidity:  payload.Main.Humidity,
		WindSpeed: round1(payload.Wind.Speed),
	}
	if len(payload.Weather) > 0 {
		reading.Condition = payload.Weather[0].Main
		reading.Description = payload.Weather[0].Description
		reading.Icon = payload.Weather[0].Icon
	} else {
		reading.Condition, reading.Description, reading.Icon = weather.FromWMO(0)
	}

	return reading, nil
}
