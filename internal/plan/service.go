// Package plan is the aggregation orchestrator: it fans out to the weather,
// news, and traffic services concurrently, tolerates individual failures,
// and feeds whatever survived to the AI planner.
package plan

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/fms-faisal/DayMate/internal/ai"
	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// WeatherSource provides current conditions.
type WeatherSource interface {
	CurrentByCity(ctx context.Context, city string) (weather.Data, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (weather.Data, error)
}

// NewsSource provides local headlines; articles are usable even when err is
// non-nil (fallback headlines).
type NewsSource interface {
	Local(ctx context.Context, city string, pageSize int) ([]news.Article, error)
}

// TrafficSource provides road conditions.
type TrafficSource interface {
	Conditions(ctx context.Context, city string, lat, lon *float64) (traffic.Report, error)
}

// PlanGenerator turns the aggregated context into itinerary text.
type PlanGenerator interface {
	DayPlan(ctx context.Context, in ai.PlanInput) (string, error)
}

// Service coordinates the fan-out.
type Service struct {
	weather WeatherSource
	news    NewsSource
	traffic TrafficSource
	ai      PlanGenerator
}

// NewService wires the orchestrator.
func NewService(w WeatherSource, n NewsSource, t TrafficSource, planner PlanGenerator) *Service {
	return &Service{weather: w, news: n, traffic: t, ai: planner}
}

// Generate assembles a plan. Provider failures are recorded per service and
// never abort the request; the only hard error is a request without a
// location.
func (s *Service) Generate(ctx context.Context, req Request) (Response, error) {
	city := strings.TrimSpace(req.City)
	useCoords := req.HasCoordinates()
	if !useCoords && city == "" {
		return Response{}, ErrNoLocation
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex

		weatherData   *weather.Data
		articles      []news.Article
		trafficReport *traffic.Report
		svcErrors     []ServiceError
	)

	recordError := func(service string, err error) {
		mu.Lock()
		svcErrors = append(svcErrors, ServiceError{Service: service, Message: err.Error()})
		mu.Unlock()
	}

	// News searches and the traffic fallback query both use the city name
	// the weather lookup resolved, which is more accurate than the request
	// (especially for coordinates). The weather goroutine delivers it even
	// when the fetch fails.
	newsCityCh := make(chan string, 1)
	trafficCityCh := make(chan string, 1)
	deliverCity := func(resolved string) {
		newsCityCh <- resolved
		trafficCityCh <- resolved
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		var (
			data weather.Data
			err  error
		)
		if useCoords {
			data, err = s.weather.CurrentByCoords(ctx, *req.Latitude, *req.Longitude)
		} else {
			data, err = s.weather.CurrentByCity(ctx, city)
		}

		if err != nil {
			log.Printf("plan: weather fetch failed: %v", err)
			recordError("weather", err)
			deliverCity(displayCity(city, nil))
			return
		}

		mu.Lock()
		weatherData = &data
		mu.Unlock()
		deliverCity(displayCity(city, &data))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		searchCity := <-newsCityCh

		result, err := s.news.Local(ctx, searchCity, news.DefaultPageSize)
		if err != nil {
			log.Printf("plan: news fetch degraded for %s: %v", searchCity, err)
			recordError("news", err)
		}

		mu.Lock()
		articles = result
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		trafficCity := <-trafficCityCh

		report, err := s.traffic.Conditions(ctx, trafficCity, req.Latitude, req.Longitude)
		if err != nil {
			log.Printf("plan: traffic fetch failed for %s: %v", trafficCity, err)
			recordError("traffic", err)
			return
		}

		mu.Lock()
		trafficReport = &report
		mu.Unlock()
	}()

	wg.Wait()

	resolvedCity := displayCity(city, weatherData)

	// The AI step always runs with whatever context survived; failures
	// substitute the rule-based plan and are recorded like any provider.
	aiPlan, err := s.ai.DayPlan(ctx, ai.PlanInput{
		Weather:     weatherData,
		News:        articles,
		Traffic:     trafficReport,
		City:        resolvedCity,
		Profile:     req.Profile,
		Preferences: req.Preferences,
	})
	if err != nil {
		recordError("ai", err)
	}
	if aiPlan == "" {
		aiPlan = "Unable to generate plan. Please try again later."
	}

	return Response{
		Weather:        weatherData,
		News:           articles,
		Traffic:        trafficReport,
		AIPlan:         aiPlan,
		City:           resolvedCity,
		Errors:         svcErrors,
		PartialSuccess: weatherData != nil || len(articles) > 0 || aiPlan != "",
	}, nil
}

// Warm refreshes the caches behind the plan context for a city. The
// scheduler calls this for configured cities so interactive requests hit
// warm geocoding and traffic caches.
func (s *Service) Warm(ctx context.Context, city string) error {
	if _, err := s.weather.CurrentByCity(ctx, city); err != nil {
		return err
	}
	if _, err := s.traffic.Conditions(ctx, city, nil, nil); err != nil {
		return err
	}
	return nil
}

func displayCity(requested string, data *weather.Data) string {
	if data != nil && data.CityName != "" {
		return data.CityName
	}
	if requested != "" {
		return requested
	}
	return "Your Location"
}
