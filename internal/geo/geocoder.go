// Package geo resolves city names to coordinates and back. Forward lookups
// use the keyless Open-Meteo geocoding API with an optional Google-backed
// fallback; reverse lookups use Nominatim.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	kelvins "github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/cache"
	"github.com/fms-faisal/DayMate/internal/httpx"
)

// ErrNotFound means the city could not be resolved by any backend.
var ErrNotFound = errors.New("location not found")

const (
	forwardURL = "https://geocoding-api.open-meteo.com/v1/search"
	reverseURL = "https://nominatim.openstreetmap.org/reverse"

	// Nominatim rejects requests without an identifying User-Agent.
	userAgent = "DayMate/1.0"
)

// Place is a resolved location.
type Place struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city_name"`
	Country string  `json:"country"`
}

// Resolver performs cached forward and reverse geocoding.
type Resolver struct {
	forwardBase string
	reverseBase string
	httpCfg     httpx.ClientConfig
	forwardCB   *gobreaker.CircuitBreaker
	reverseCB   *gobreaker.CircuitBreaker
	cache       *cache.TTLCache

	// googleEnabled switches on the kelvins geocoder fallback. The key is
	// package-global in that library, so it is set once at construction.
	googleEnabled bool
}

// NewResolver creates a Resolver. googleAPIKey may be empty, in which case
// the Google fallback is disabled. ttl controls the geocoding cache.
func NewResolver(client *http.Client, googleAPIKey string, ttl time.Duration) *Resolver {
	if googleAPIKey != "" {
		kelvins.ApiKey = googleAPIKey
	}
	return &Resolver{
		forwardBase:   forwardURL,
		reverseBase:   reverseURL,
		httpCfg:       httpx.DefaultConfig(client),
		forwardCB:     httpx.NewBreaker("geocoding-forward"),
		reverseCB:     httpx.NewBreaker("geocoding-reverse"),
		cache:         cache.New(ttl),
		googleEnabled: googleAPIKey != "",
	}
}

// Cache exposes the underlying cache for sweeping.
func (r *Resolver) Cache() *cache.TTLCache { return r.cache }

// Forward resolves a city name to coordinates. Returns ErrNotFound when no
// backend knows the city.
func (r *Resolver) Forward(ctx context.Context, city string) (Place, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Place{}, ErrNotFound
	}

	key := "fwd:" + strings.ToLower(city)
	if v, ok := r.cache.Get(key); ok {
		return v.(Place), nil
	}

	place, err := r.forwardOpenMeteo(ctx, city)
	if errors.Is(err, ErrNotFound) && r.googleEnabled {
		place, err = r.forwardGoogle(city)
	}
	if err != nil {
		return Place{}, err
	}

	r.cache.Set(key, place)
	return place, nil
}

func (r *Resolver) forwardOpenMeteo(ctx context.Context, city string) (Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", city)
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")
		return http.NewRequest(http.MethodGet, r.forwardBase+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, r.httpCfg, r.forwardCB, buildRequest)
	if err != nil {
		return Place{}, fmt.Errorf("geocoding service unavailable: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Name        string  `json:"name"`
			CountryCode string  `json:"country_code"`
			Country     string  `json:"country"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, err
	}

	if len(payload.Results) == 0 {
		return Place{}, ErrNotFound
	}

	res := payload.Results[0]
	country := res.CountryCode
	if country == "" {
		country = res.Country
	}

	return Place{
		Lat:     res.Latitude,
		Lon:     res.Longitude,
		City:    res.Name,
		Country: country,
	}, nil
}

func (r *Resolver) forwardGoogle(city string) (Place, error) {
	loc, err := kelvins.Geocoding(kelvins.Address{City: city})
	if err != nil {
		return Place{}, ErrNotFound
	}
	return Place{
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
		City: city,
	}, nil
}

// Reverse resolves coordinates to a display name. The city falls back
// through address granularities the way Nominatim reports them.
func (r *Resolver) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	key := fmt.Sprintf("rev:%.3f:%.3f", lat, lon)
	if v, ok := r.cache.Get(key); ok {
		return v.(Place), nil
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("format", "json")
		values.Set("zoom", "10")

		req, err := http.NewRequest(http.MethodGet, r.reverseBase+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := httpx.Do(ctx, r.httpCfg, r.reverseCB, buildRequest)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocoding unavailable: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Address struct {
			City         string `json:"city"`
			Town         string `json:"town"`
			Village      string `json:"village"`
			Municipality string `json:"municipality"`
			County       string `json:"county"`
			CountryCode  string `json:"country_code"`
			Country      string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, err
	}

	addr := payload.Address
	city := firstNonEmpty(addr.City, addr.Town, addr.Village, addr.Municipality, addr.County)
	if city == "" {
		city = "Unknown Location"
	}
	country := strings.ToUpper(addr.CountryCode)
	if country == "" {
		country = addr.Country
	}

	place := Place{Lat: lat, Lon: lon, City: city, Country: country}
	r.cache.Set(key, place)
	return place, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
