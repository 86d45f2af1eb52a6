package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/fms-faisal/DayMate/internal/httpx"
)

// Alert is a traffic-related headline pulled from the Google News RSS feed.
type Alert struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
	Priority  string `json:"priority"` // "high" or "normal"
}

const googleNewsRSS = "https://news.google.com/rss/search"

// highPriorityTerms flag alerts worth calling out in the plan.
var highPriorityTerms = []string{
	"accident", "crash", "collision", "closure", "closed",
	"emergency", "fatal", "major delay", "pile-up", "gridlock",
}

type alertFeed struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func newAlertFeed(client *http.Client) *alertFeed {
	return &alertFeed{
		baseURL: googleNewsRSS,
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("google-news-rss"),
	}
}

// rssDocument covers the handful of fields we read from the feed.
type rssDocument struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
			Source  string `xml:"source"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (f *alertFeed) fetch(ctx context.Context, city string, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city+" traffic")
		values.Set("hl", "en-US")
		values.Set("gl", "US")
		values.Set("ceid", "US:en")
		return http.NewRequest(http.MethodGet, f.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := httpx.Do(ctx, f.httpCfg, f.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("traffic alert feed unavailable: %w", err)
	}
	defer resp.Body.Close()

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("traffic alert feed returned malformed data: %w", err)
	}

	alerts := make([]Alert, 0, limit)
	for _, item := range doc.Channel.Items {
		if len(alerts) >= limit {
			break
		}
		if item.Title == "" {
			continue
		}
		alerts = append(alerts, Alert{
			Title:     item.Title,
			Link:      item.Link,
			Source:    item.Source,
			Published: item.PubDate,
			Priority:  classifyAlert(item.Title),
		})
	}

	if len(alerts) == 0 {
		return nil, fmt.Errorf("no traffic alerts found for %s", city)
	}
	return alerts, nil
}

func classifyAlert(title string) string {
	lower := strings.ToLower(title)
	for _, term := range highPriorityTerms {
		if strings.Contains(lower, term) {
			return "high"
		}
	}
	return "normal"
}

// HasHighPriority reports whether any alert was classified high.
func HasHighPriority(alerts []Alert) bool {
	for _, a := range alerts {
		if a.Priority == "high" {
			return true
		}
	}
	return false
}
