// Package traffic reports road conditions and incidents near a city using
// the TomTom traffic APIs, falling back to Google News RSS alerts when
// TomTom is unavailable or has no coverage.
package traffic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/cache"
	"github.com/fms-faisal/DayMate/internal/geo"
	"github.com/fms-faisal/DayMate/internal/httpx"
	"github.com/fms-faisal/DayMate/internal/news"
)

// ErrUnavailable means neither TomTom nor the alert feed produced data.
var ErrUnavailable = errors.New("traffic data unavailable")

const (
	flowURL     = "https://api.tomtom.com/traffic/services/4/flowSegmentData/relative0/10/json"
	incidentURL = "https://api.tomtom.com/traffic/services/5/incidentDetails"

	// DefaultCacheTTL matches the upstream refresh cadence.
	DefaultCacheTTL = 5 * time.Minute
)

// Geocoder resolves a city to coordinates for the TomTom point queries.
type Geocoder interface {
	Forward(ctx context.Context, city string) (geo.Place, error)
}

// AlertSource provides the news-feed fallback.
type AlertSource interface {
	TrafficAlerts(ctx context.Context, city string, limit int) ([]news.Alert, error)
}

// Service fetches and caches traffic reports.
type Service struct {
	apiKey      string
	flowBase    string
	incidentBase string
	httpCfg     httpx.ClientConfig
	flowCB      *gobreaker.CircuitBreaker
	incidentCB  *gobreaker.CircuitBreaker
	geocoder    Geocoder
	alerts      AlertSource
	cache       *cache.TTLCache
	now         func() time.Time
}

// NewService creates a Service. apiKey may be empty; every report then comes
// from the alert feed.
func NewService(client *http.Client, apiKey string, geocoder Geocoder, alerts AlertSource, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		apiKey:       apiKey,
		flowBase:     flowURL,
		incidentBase: incidentURL,
		httpCfg:      httpx.DefaultConfig(client),
		flowCB:       httpx.NewBreaker("tomtom-flow"),
		incidentCB:   httpx.NewBreaker("tomtom-incidents"),
		geocoder:     geocoder,
		alerts:       alerts,
		cache:        cache.New(cacheTTL),
		now:          time.Now,
	}
}

// Cache exposes the underlying cache for sweeping.
func (s *Service) Cache() *cache.TTLCache { return s.cache }

// Conditions returns the traffic report for a city. Coordinates are used
// when supplied, otherwise the city is geocoded.
func (s *Service) Conditions(ctx context.Context, city string, lat, lon *float64) (Report, error) {
	cacheKey := city
	if lat != nil && lon != nil {
		cacheKey = fmt.Sprintf("%s:%.3f:%.3f", city, *lat, *lon)
	}
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(Report), nil
	}

	report, err := s.build(ctx, city, lat, lon)
	if err != nil {
		return Report{}, err
	}

	s.cache.Set(cacheKey, report)
	return report, nil
}

func (s *Service) build(ctx context.Context, city string, lat, lon *float64) (Report, error) {
	if s.apiKey == "" {
		return s.fallback(ctx, city, "traffic API key not configured")
	}

	if lat == nil || lon == nil {
		place, err := s.geocoder.Forward(ctx, city)
		if err != nil {
			return s.fallback(ctx, city, fmt.Sprintf("location not found: %v", err))
		}
		lat, lon = &place.Lat, &place.Lon
	}

	roads, err := s.fetchFlow(ctx, *lat, *lon)
	if err != nil || len(roads) == 0 {
		reason := "no road coverage for this location"
		if err != nil {
			reason = err.Error()
		}
		return s.fallback(ctx, city, reason)
	}

	// Incidents are best-effort; a flow-only report is still useful.
	incidents, err := s.fetchIncidents(ctx, *lat, *lon)
	if err != nil {
		log.Printf("traffic: incident fetch failed for %s: %v", city, err)
	}

	return Report{
		City:           city,
		RoadConditions: roads,
		Incidents:      incidents,
		LastUpdated:    s.now().UTC(),
		DataSource:     "TomTom Traffic API",
	}, nil
}

// fallback builds an alert-based report from the news feed. reason explains
// why TomTom data could not be used.
func (s *Service) fallback(ctx context.Context, city, reason string) (Report, error) {
	log.Printf("traffic: falling back to news alerts for %s: %s", city, reason)

	alerts, err := s.alerts.TrafficAlerts(ctx, city, news.DefaultPageSize)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s; alert feed: %v", ErrUnavailable, reason, err)
	}

	return Report{
		City:                  city,
		RoadConditions:        []RoadCondition{},
		Incidents:             []Incident{},
		Alerts:                alerts,
		HasHighPriorityAlerts: news.HasHighPriority(alerts),
		LastUpdated:           s.now().UTC(),
		DataSource:            "Google News RSS",
	}, nil
}

func (s *Service) fetchFlow(ctx context.Context, lat, lon float64) ([]RoadCondition, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", s.apiKey)
		values.Set("point", fmt.Sprintf("%f,%f", lat, lon))
		values.Set("unit", "KMPH")
		return http.NewRequest(http.MethodGet, s.flowBase+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, s.httpCfg, s.flowCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		FlowSegmentData struct {
			FRC           string  `json:"frc"`
			CurrentSpeed  float64 `json:"currentSpeed"`
			FreeFlowSpeed float64 `json:"freeFlowSpeed"`
			RoadClosure   bool    `json:"roadClosure"`
		} `json:"flowSegmentData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	seg := payload.FlowSegmentData
	if seg.FreeFlowSpeed == 0 && seg.CurrentSpeed == 0 {
		return nil, nil
	}

	level := ClassifyCongestion(seg.CurrentSpeed, seg.FreeFlowSpeed)
	if seg.RoadClosure {
		level = CongestionJammed
	}

	return []RoadCondition{{
		RoadName:        roadClassName(seg.FRC),
		CongestionLevel: level,
		SpeedKmh:        seg.CurrentSpeed,
		NormalSpeedKmh:  seg.FreeFlowSpeed,
		Closed:          seg.RoadClosure,
		LastUpdated:     s.now().UTC(),
	}}, nil
}

func (s *Service) fetchIncidents(ctx context.Context, lat, lon float64) ([]Incident, error) {
	buildRequest := func() (*http.Request, error) {
		// Roughly a 20km box around the point.
		bbox := fmt.Sprintf("%f,%f,%f,%f", lon-0.1, lat-0.1, lon+0.1, lat+0.1)
		values := url.Values{}
		values.Set("key", s.apiKey)
		values.Set("bbox", bbox)
		values.Set("fields", "{incidents{properties{iconCategory,magnitudeOfDelay,from,to,delay,events{description}}}}")
		values.Set("language", "en-GB")
		return http.NewRequest(http.MethodGet, s.incidentBase+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, s.httpCfg, s.incidentCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Incidents []struct {
			Properties struct {
				IconCategory     int    `json:"iconCategory"`
				MagnitudeOfDelay int    `json:"magnitudeOfDelay"`
				From             string `json:"from"`
				To               string `json:"to"`
				Delay            int    `json:"delay"` // seconds
				Events           []struct {
					Description string `json:"description"`
				} `json:"events"`
			} `json:"properties"`
		} `json:"incidents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	incidents := make([]Incident, 0, len(payload.Incidents))
	for _, in := range payload.Incidents {
		p := in.Properties

		description := ""
		if len(p.Events) > 0 {
			description = p.Events[0].Description
		}

		incidents = append(incidents, Incident{
			Type:         incidentType(p.IconCategory),
			Severity:     incidentSeverity(p.MagnitudeOfDelay),
			RoadName:     p.From,
			Location:     p.To,
			Description:  description,
			DelayMinutes: p.Delay / 60,
		})
	}

	return incidents, nil
}

// roadClassName converts a TomTom functional road class to a readable label.
func roadClassName(frc string) string {
	switch frc {
	case "FRC0":
		return "Motorway"
	case "FRC1":
		return "Major road"
	case "FRC2":
		return "Other major road"
	case "FRC3":
		return "Secondary road"
	case "FRC4":
		return "Local connecting road"
	case "FRC5", "FRC6":
		return "Local road"
	default:
		return "Road"
	}
}

func incidentType(iconCategory int) string {
	switch iconCategory {
	case 1:
		return "accident"
	case 6:
		return "jam"
	case 7:
		return "lane_closed"
	case 8:
		return "road_closure"
	case 9:
		return "construction"
	case 14:
		return "broken_down_vehicle"
	default:
		return "other"
	}
}

func incidentSeverity(magnitude int) string {
	switch {
	case magnitude >= 4:
		return "critical"
	case magnitude == 3:
		return "major"
	default:
		return "minor"
	}
}
