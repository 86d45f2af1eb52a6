package traffic

import (
	"time"

	"github.com/fms-faisal/DayMate/internal/news"
)

// Congestion levels, ordered from best to worst.
const (
	CongestionFree     = "free"
	CongestionLight    = "light"
	CongestionModerate = "moderate"
	CongestionHeavy    = "heavy"
	CongestionJammed   = "jammed"
)

// RoadCondition describes flow on a road segment near the queried point.
type RoadCondition struct {
	RoadName        string    `json:"road_name"`
	CongestionLevel string    `json:"congestion_level"`
	SpeedKmh        float64   `json:"speed_kmh"`
	NormalSpeedKmh  float64   `json:"normal_speed_kmh"`
	Closed          bool      `json:"closed,omitempty"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Incident is a reported traffic incident.
type Incident struct {
	Type         string `json:"incident_type"`
	Severity     string `json:"severity"` // minor, major, critical
	RoadName     string `json:"road_name,omitempty"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description"`
	DelayMinutes int    `json:"delay_minutes,omitempty"`
}

// Report is the unified traffic view for a location. When the TomTom data is
// unusable the report carries news-feed alerts instead.
type Report struct {
	City                  string          `json:"city"`
	RoadConditions        []RoadCondition `json:"road_conditions"`
	Incidents             []Incident      `json:"incidents"`
	Alerts                []news.Alert    `json:"traffic_alerts,omitempty"`
	HasHighPriorityAlerts bool            `json:"has_high_priority_alerts"`
	LastUpdated           time.Time       `json:"last_updated"`
	DataSource            string          `json:"data_source"`
}

// ClassifyCongestion maps a current/free-flow speed ratio to a level.
func ClassifyCongestion(currentKmh, freeFlowKmh float64) string {
	if freeFlowKmh <= 0 {
		return CongestionFree
	}
	ratio := currentKmh / freeFlowKmh
	switch {
	case ratio >= 0.9:
		return CongestionFree
	case ratio >= 0.7:
		return CongestionLight
	case ratio >= 0.5:
		return CongestionModerate
	case ratio >= 0.3:
		return CongestionHeavy
	default:
		return CongestionJammed
	}
}
