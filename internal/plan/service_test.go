package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fms-faisal/DayMate/internal/ai"
	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
)

type fakeWeather struct {
	data weather.Data
	err  error
}

func (f *fakeWeather) CurrentByCity(ctx context.Context, city string) (weather.Data, error) {
	return f.data, f.err
}

func (f *fakeWeather) CurrentByCoords(ctx context.Context, lat, lon float64) (weather.Data, error) {
	return f.data, f.err
}

type fakeNews struct {
	articles   []news.Article
	err        error
	searchCity string
}

func (f *fakeNews) Local(ctx context.Context, city string, pageSize int) ([]news.Article, error) {
	f.searchCity = city
	return f.articles, f.err
}

type fakeTraffic struct {
	report    traffic.Report
	err       error
	queryCity string
}

func (f *fakeTraffic) Conditions(ctx context.Context, city string, lat, lon *float64) (traffic.Report, error) {
	f.queryCity = city
	return f.report, f.err
}

type fakePlanner struct {
	plan string
	err  error
	in   ai.PlanInput
}

func (f *fakePlanner) DayPlan(ctx context.Context, in ai.PlanInput) (string, error) {
	f.in = in
	return f.plan, f.err
}

func errorFor(t *testing.T, resp Response, service string) *ServiceError {
	t.Helper()
	for i := range resp.Errors {
		if resp.Errors[i].Service == service {
			return &resp.Errors[i]
		}
	}
	return nil
}

func TestGenerateAllServicesHealthy(t *testing.T) {
	w := &fakeWeather{data: weather.Data{Temp: 21, Condition: "Clear", CityName: "Dhaka", Country: "BD"}}
	n := &fakeNews{articles: []news.Article{{Title: "Festival today"}}}
	tr := &fakeTraffic{report: traffic.Report{City: "Dhaka", DataSource: "TomTom Traffic API"}}
	p := &fakePlanner{plan: "enjoy your day"}

	svc := NewService(w, n, tr, p)
	resp, err := svc.Generate(context.Background(), Request{City: "dhaka"})
	require.NoError(t, err)

	assert.Empty(t, resp.Errors)
	assert.True(t, resp.PartialSuccess)
	assert.Equal(t, "Dhaka", resp.City, "display city comes from the weather result")
	assert.Equal(t, "Dhaka", n.searchCity, "news searches with the resolved city")
	assert.Equal(t, "enjoy your day", resp.AIPlan)
	require.NotNil(t, resp.Weather)
	require.NotNil(t, resp.Traffic)
	assert.Equal(t, "Dhaka", p.in.City)
}

func TestGenerateWeatherDownStillProducesPlan(t *testing.T) {
	w := &fakeWeather{err: errors.New("weather service temporarily unavailable")}
	n := &fakeNews{articles: news.Fallback("Dhaka")}
	tr := &fakeTraffic{err: errors.New("traffic data unavailable")}
	p := &fakePlanner{plan: "flexible plan"}

	svc := NewService(w, n, tr, p)
	resp, err := svc.Generate(context.Background(), Request{City: "Dhaka"})
	require.NoError(t, err)

	assert.Nil(t, resp.Weather)
	assert.Nil(t, resp.Traffic)
	assert.NotNil(t, errorFor(t, resp, "weather"))
	assert.NotNil(t, errorFor(t, resp, "traffic"))
	assert.Nil(t, errorFor(t, resp, "news"))
	assert.True(t, resp.PartialSuccess)
	assert.Equal(t, "Dhaka", resp.City)
	assert.Nil(t, p.in.Weather, "planner sees no weather when the fetch failed")
}

func TestGenerateDegradedNewsRecordsErrorButKeepsArticles(t *testing.T) {
	w := &fakeWeather{data: weather.Data{CityName: "Dhaka"}}
	n := &fakeNews{articles: news.Fallback("Dhaka"), err: errors.New("news API key not configured")}
	tr := &fakeTraffic{}
	p := &fakePlanner{plan: "plan"}

	svc := NewService(w, n, tr, p)
	resp, err := svc.Generate(context.Background(), Request{City: "Dhaka"})
	require.NoError(t, err)

	assert.NotNil(t, errorFor(t, resp, "news"))
	assert.Len(t, resp.News, 3, "fallback headlines are kept alongside the error")
}

func TestGenerateAIFailureSubstitutesFallbackPlan(t *testing.T) {
	w := &fakeWeather{data: weather.Data{CityName: "Dhaka"}}
	p := &fakePlanner{plan: "## Daily Plan for Dhaka", err: ai.ErrNotConfigured}

	svc := NewService(w, &fakeNews{}, &fakeTraffic{}, p)
	resp, err := svc.Generate(context.Background(), Request{City: "Dhaka"})
	require.NoError(t, err)

	assert.NotNil(t, errorFor(t, resp, "ai"))
	assert.Contains(t, resp.AIPlan, "Daily Plan")
	assert.True(t, resp.PartialSuccess)
}

func TestGenerateRequiresLocation(t *testing.T) {
	svc := NewService(&fakeWeather{}, &fakeNews{}, &fakeTraffic{}, &fakePlanner{})

	_, err := svc.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoLocation)

	lat := 23.8
	_, err = svc.Generate(context.Background(), Request{Latitude: &lat})
	assert.ErrorIs(t, err, ErrNoLocation, "one coordinate is not enough")
}

func TestGenerateCoordinateRequestUsesResolvedCity(t *testing.T) {
	w := &fakeWeather{data: weather.Data{CityName: "Narayanganj", Country: "BD"}}
	n := &fakeNews{}
	tr := &fakeTraffic{}
	lat, lon := 23.62, 90.5

	svc := NewService(w, n, tr, &fakePlanner{plan: "plan"})
	resp, err := svc.Generate(context.Background(), Request{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)

	assert.Equal(t, "Narayanganj", resp.City)
	assert.Equal(t, "Narayanganj", n.searchCity)
	assert.Equal(t, "Narayanganj", tr.queryCity, "traffic queries with the resolved city, not a placeholder")
}
