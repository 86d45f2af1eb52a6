package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMeteoCurrentParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.850000", r.URL.Query().Get("latitude"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"temperature_2m":18.62,"relative_humidity_2m":64,"apparent_temperature":17.9,"weather_code":61,"wind_speed_10m":14.4}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	r, err := p.Current(context.Background(), 48.85, 2.35)
	require.NoError(t, err)

	assert.Equal(t, 18.6, r.Temp)
	assert.Equal(t, 17.9, r.FeelsLike)
	assert.Equal(t, 64, r.Humidity)
	assert.Equal(t, "Rain", r.Condition)
	assert.Equal(t, "slight rain", r.Description)
	// 14.4 km/h is 4 m/s.
	assert.Equal(t, 4.0, r.WindSpeed)
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	_, err := p.Current(context.Background(), 0, 0)
	require.Error(t, err)
}
