// Package prefs stores per-user planning preferences in a local JSON file
// mirrored to a per-user cloud document, reconciling the two on load.
package prefs

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a user has no stored preferences.
var ErrNotFound = errors.New("preferences not found")

// Preferences are the knobs that bias plan generation for a user.
type Preferences struct {
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	TravelMode     string    `json:"travel_mode,omitempty" bson:"travel_mode,omitempty"`
	FoodPreference string    `json:"food_preference,omitempty" bson:"food_preference,omitempty"`
	ActivityType   string    `json:"activity_type,omitempty" bson:"activity_type,omitempty"`
	Pace           string    `json:"pace,omitempty" bson:"pace,omitempty"`
	Budget         string    `json:"budget,omitempty" bson:"budget,omitempty"`
	Companions     string    `json:"companions,omitempty" bson:"companions,omitempty"`
	Interests      string    `json:"interests,omitempty" bson:"interests,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the contract both the local file store and the cloud store satisfy.
type Store interface {
	Load(ctx context.Context, userID string) (Preferences, error)
	Save(ctx context.Context, userID string, p Preferences) error
}
