package plan

import (
	"errors"

	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/prefs"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// ErrNoLocation is returned when a request names neither a city nor a
// complete coordinate pair.
var ErrNoLocation = errors.New("either city name or coordinates (latitude/longitude) are required")

// Request asks for a daily plan by city name or coordinates.
type Request struct {
	City        string             `json:"city" validate:"omitempty,min=1,max=100"`
	Latitude    *float64           `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64           `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Profile     string             `json:"profile" validate:"omitempty,oneof=standard child elderly"`
	Preferences *prefs.Preferences `json:"preferences"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r Request) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ServiceError records a single provider's failure inside an otherwise
// successful plan.
type ServiceError struct {
	Service string `json:"service"`
	Message string `json:"message"`
}

// Response is the assembled plan. It is never persisted server-side.
type Response struct {
	Weather        *weather.Data   `json:"weather,omitempty"`
	News           []news.Article  `json:"news"`
	Traffic        *traffic.Report `json:"traffic,omitempty"`
	AIPlan         string          `json:"ai_plan"`
	City           string          `json:"city"`
	Errors         []ServiceError  `json:"errors"`
	PartialSuccess bool            `json:"partial_success"`
}
