package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fms-faisal/DayMate/internal/geo"
)

type fakeGeocoder struct {
	forward    geo.Place
	forwardErr error
	reverse    geo.Place
	reverseErr error
}

func (f *fakeGeocoder) Forward(ctx context.Context, city string) (geo.Place, error) {
	return f.forward, f.forwardErr
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lon float64) (geo.Place, error) {
	return f.reverse, f.reverseErr
}

type fakeProvider struct {
	name    string
	reading Reading
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Current(ctx context.Context, lat, lon float64) (Reading, error) {
	return f.reading, f.err
}

func TestCurrentByCityPrefersFirstProvider(t *testing.T) {
	gc := &fakeGeocoder{forward: geo.Place{Lat: 48.85, Lon: 2.35, City: "Paris", Country: "FR"}}
	svc := NewService(gc, []Provider{
		&fakeProvider{name: "primary", reading: Reading{Temp: 18.5, Condition: "Clear"}},
		&fakeProvider{name: "secondary", reading: Reading{Temp: 99, Condition: "Thunderstorm"}},
	})

	data, err := svc.CurrentByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, 18.5, data.Temp)
	assert.Equal(t, "Clear", data.Condition)
	assert.Equal(t, "Paris", data.CityName)
	assert.Equal(t, "FR", data.Country)
}

func TestCurrentFallsBackToSecondaryProvider(t *testing.T) {
	gc := &fakeGeocoder{forward: geo.Place{City: "Paris", Country: "FR"}}
	svc := NewService(gc, []Provider{
		&fakeProvider{name: "primary", err: errors.New("boom")},
		&fakeProvider{name: "secondary", reading: Reading{Temp: 12, Condition: "Clouds"}},
	})

	data, err := svc.CurrentByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Clouds", data.Condition)
}

func TestCurrentAllProvidersFailing(t *testing.T) {
	gc := &fakeGeocoder{forward: geo.Place{City: "Paris"}}
	svc := NewService(gc, []Provider{
		&fakeProvider{name: "primary", err: errors.New("down")},
		&fakeProvider{name: "secondary", err: errors.New("down too")},
	})

	_, err := svc.CurrentByCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrentByCityUnknownCity(t *testing.T) {
	gc := &fakeGeocoder{forwardErr: geo.ErrNotFound}
	svc := NewService(gc, []Provider{&fakeProvider{name: "p"}})

	_, err := svc.CurrentByCity(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestCurrentByCoordsSurvivesReverseGeocodeFailure(t *testing.T) {
	gc := &fakeGeocoder{reverseErr: errors.New("nominatim down")}
	svc := NewService(gc, []Provider{
		&fakeProvider{name: "p", reading: Reading{Temp: 20}},
	})

	data, err := svc.CurrentByCoords(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, "Your Location", data.CityName)
}

func TestFromWMO(t *testing.T) {
	cond, desc, icon := FromWMO(95)
	assert.Equal(t, "Thunderstorm", cond)
	assert.Equal(t, "thunderstorm", desc)
	assert.Equal(t, "11d", icon)

	// Unknown codes read as clear sky.
	cond, _, _ = FromWMO(1234)
	assert.Equal(t, "Clear", cond)
}
