package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fms-faisal/DayMate/internal/geo"
)

// ErrUnavailable is returned when no provider produced a reading.
var ErrUnavailable = errors.New("weather service temporarily unavailable")

// Geocoder is the slice of geo.Resolver the service needs.
type Geocoder interface {
	Forward(ctx context.Context, city string) (geo.Place, error)
	Reverse(ctx context.Context, lat, lon float64) (geo.Place, error)
}

// Service fetches current conditions from multiple providers. Providers are
// queried concurrently and the highest-priority success wins; order in the
// slice is priority order (Open-Meteo first since it needs no key).
type Service struct {
	geocoder  Geocoder
	providers []Provider
}

// NewService creates a Service. At least one provider is expected.
func NewService(geocoder Geocoder, providers []Provider) *Service {
	return &Service{
		geocoder:  geocoder,
		providers: providers,
	}
}

// CurrentByCity resolves the city and fetches current conditions. The
// returned city name and country come from geocoding, which is more
// accurate than echoing the request.
func (s *Service) CurrentByCity(ctx context.Context, city string) (Data, error) {
	place, err := s.geocoder.Forward(ctx, city)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			return Data{}, fmt.Errorf("city '%s' not found, please check the spelling and try again", city)
		}
		return Data{}, err
	}
	return s.current(ctx, place)
}

// CurrentByCoords fetches current conditions for raw coordinates. Reverse
// geocoding is best-effort: the plan still works when only a generic
// location label is available.
func (s *Service) CurrentByCoords(ctx context.Context, lat, lon float64) (Data, error) {
	place := geo.Place{Lat: lat, Lon: lon, City: "Your Location"}
	if resolved, err := s.geocoder.Reverse(ctx, lat, lon); err == nil {
		place = resolved
	} else {
		log.Printf("weather: reverse geocoding failed for %.3f,%.3f: %v", lat, lon, err)
	}
	return s.current(ctx, place)
}

func (s *Service) current(ctx context.Context, place geo.Place) (Data, error) {
	if len(s.providers) == 0 {
		return Data{}, fmt.Errorf("no weather providers configured")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings = make([]*Reading, len(s.providers))
	)

	for i, p := range s.providers {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Current(ctx, place.Lat, place.Lon)
			if err != nil {
				// Log and continue; another provider may still succeed.
				log.Printf("weather: provider %s failed for %s: %v", p.Name(), place.City, err)
				return
			}

			mu.Lock()
			readings[i] = &r
			mu.Unlock()
		}()
	}

	wg.Wait()

	// Priority selection: first slot with a reading wins.
	for _, r := range readings {
		if r == nil {
			continue
		}
		return Data{
			Temp:        r.Temp,
			FeelsLike:   r.FeelsLike,
			Humidity:    r.Humidity,
			Condition:   r.Condition,
			Description: r.Description,
			Icon:        r.Icon,
			WindSpeed:   r.WindSpeed,
			CityName:    place.City,
			Country:     place.Country,
		}, nil
	}

	return Data{}, ErrUnavailable
}
