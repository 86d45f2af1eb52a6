// Package news fetches city-local headlines from NewsAPI and traffic alerts
// from the Google News RSS feed. Every failure path still yields usable
// articles: canned fallback headlines keep the daily plan populated when the
// upstream is missing a key, rate limited, or down.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/httpx"
)

// Article is a single news item.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// DefaultPageSize is the number of articles fetched per city.
const DefaultPageSize = 5

const everythingURL = "https://newsapi.org/v2/everything"

// Client talks to NewsAPI.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
	alerts  *alertFeed
}

// NewClient creates a Client. An empty apiKey is allowed; Local then always
// returns fallback headlines with an error describing why.
func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: everythingURL,
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("newsapi"),
		alerts:  newAlertFeed(client),
	}
}

// Local fetches up to pageSize recent articles mentioning the city.
// The returned slice is always usable: when err is non-nil it holds the
// fallback headlines and err carries the message to surface to the caller.
func (c *Client) Local(ctx context.Context, city string, pageSize int) ([]Article, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if c.apiKey == "" {
		return Fallback(city), errors.New("news API key not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("pageSize", fmt.Sprintf("%d", pageSize))
		values.Set("sortBy", "publishedAt")
		values.Set("language", "en")
		values.Set("apiKey", c.apiKey)
		return http.NewRequest(http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		switch httpx.StatusCode(err) {
		case http.StatusUnauthorized:
			return Fallback(city), errors.New("invalid news API key")
		case http.StatusUpgradeRequired:
			// NewsAPI returns 426 when the free tier is used outside localhost.
			return Fallback(city), errors.New("news API free tier only works on localhost")
		default:
			return Fallback(city), fmt.Errorf("news service unavailable: %w", err)
		}
	}
	defer resp.Body.Close()

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Fallback(city), fmt.Errorf("news service returned malformed data: %w", err)
	}

	if len(payload.Articles) == 0 {
		// Not an error; substitute the generic headlines.
		return Fallback(city), nil
	}

	articles := make([]Article, 0, pageSize)
	for _, a := range payload.Articles {
		if len(articles) >= pageSize {
			break
		}
		title := a.Title
		if title == "" {
			title = "No title"
		}
		link := a.URL
		if link == "" {
			link = "#"
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, Article{
			Title:       title,
			Description: a.Description,
			URL:         link,
			Source:      source,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

// TrafficAlerts returns traffic-related alerts for the city from the Google
// News RSS feed. Used directly as the traffic-service fallback.
func (c *Client) TrafficAlerts(ctx context.Context, city string, limit int) ([]Alert, error) {
	return c.alerts.fetch(ctx, city, limit)
}

// Fallback returns the generic placeholder headlines shown when the news
// upstream cannot be reached.
func Fallback(city string) []Article {
	return []Article{
		{
			Title:       fmt.Sprintf("Local events and activities in %s", city),
			Description: "Check local event listings for activities in your area.",
			URL:         "#",
			Source:      "DayMate",
		},
		{
			Title:       fmt.Sprintf("Traffic and transportation updates for %s", city),
			Description: "Stay informed about local traffic conditions.",
			URL:         "#",
			Source:      "DayMate",
		},
		{
			Title:       fmt.Sprintf("Community news from %s", city),
			Description: "Connect with local community happenings.",
			URL:         "#",
			Source:      "DayMate",
		},
	}
}
