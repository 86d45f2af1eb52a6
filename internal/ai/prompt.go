package ai

import (
	"fmt"
	"strings"

	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/prefs"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// Profile tags biasing the prompt phrasing.
const (
	ProfileStandard = "standard"
	ProfileChild    = "child"
	ProfileElderly  = "elderly"
)

// PlanInput is the aggregated context a day plan is generated from. Any
// field may be missing; the prompt adapts.
type PlanInput struct {
	Weather     *weather.Data
	News        []news.Article
	Traffic     *traffic.Report
	City        string
	Profile     string
	Preferences *prefs.Preferences
}

// FollowUpInput is the context for a chat refinement turn.
type FollowUpInput struct {
	Weather      *weather.Data
	News         []news.Article
	City         string
	PreviousPlan string
	Message      string
}

func buildPlanPrompt(in PlanInput) string {
	location := in.City
	if in.Weather != nil && in.Weather.CityName != "" {
		location = in.Weather.CityName
	}
	if location == "" {
		location = "Unknown"
	}

	temp := 15.0
	condition := "variable"
	if in.Weather != nil {
		temp = in.Weather.Temp
		condition = in.Weather.Condition
	}

	var context []string
	if in.Weather != nil {
		w := in.Weather
		context = append(context, fmt.Sprintf(`WEATHER:
- Location: %s, %s
- Temperature: %.1f°C (feels like %.1f°C)
- Conditions: %s - %s
- Humidity: %d%%
- Wind: %.1f m/s`,
			w.CityName, w.Country, w.Temp, w.FeelsLike, w.Condition, w.Description, w.Humidity, w.WindSpeed))
	} else {
		context = append(context, fmt.Sprintf("WEATHER: Not available for %s", location))
	}

	if headlines := newsHeadlines(in.News, 5); len(headlines) > 0 {
		context = append(context, "\nTODAY'S NEWS:\n"+strings.Join(headlines, "\n"))
	}

	if summary := trafficSummary(in.Traffic); summary != "" {
		context = append(context, "\nTRAFFIC:\n"+summary)
	}

	userName := "Friend"
	var prefBlock string
	if p := in.Preferences; p != nil {
		if p.Name != "" {
			userName = p.Name
		}
		prefBlock = fmt.Sprintf(`
USER PREFERENCES:
- Name: %s
- Travel Mode: %s
- Food Preference: %s
- Activity Type: %s
- Pace: %s
- Budget: %s
- Companions: %s
- Additional Notes: %s
`,
			userName,
			orDefault(p.TravelMode, "any"),
			orDefault(p.FoodPreference, "any"),
			orDefault(p.ActivityType, "mixed"),
			orDefault(p.Pace, "medium"),
			orDefault(p.Budget, "medium"),
			orDefault(p.Companions, "solo"),
			orDefault(p.Interests, "None"))
	}

	return fmt.Sprintf(`You are DayMate, a friendly personal assistant who knows %[1]s like the back of your hand!

%[2]s

%[3]s
%[4]s

Create a warm, personalized daily plan for %[5]s. Be like a helpful friend who lives in %[1]s.

STYLE:
- Be warm and conversational (use "you", "your", friendly phrases)
- Address the user as "%[5]s" at least once naturally
- Sound excited and helpful, like texting a friend recommendations
- Use emojis sparingly (1-2 max in the whole response)

FORMAT - Use EXACTLY this structure:
* **Morning:** [Specific activity at a REAL named place]. [Why it's great + weather consideration]

* **Midday:** [Lunch recommendation at REAL restaurant name]. [What to try there]

* **Afternoon:** [Activity at REAL place]. [Tip or detail]

* **Evening:** [Dinner/activity at REAL venue]. [Personal touch]

* **Local Tip:** [One insider secret about %[1]s]

REQUIREMENTS:
1. Name REAL specific places in %[1]s (actual restaurant names, real landmarks, specific neighborhoods)
2. Consider the %[6].1f°C %[7]s weather - suggest what to wear briefly
3. Keep each point to 1-2 sentences max
4. Sound like a friendly local, not a tour guide
5. If news mentions events/issues, weave them in naturally
6. If traffic is congested, prefer routes and areas that avoid it
7. STRICTLY ADHERE to the PROFILE guidelines above.

Remember: Be specific! Say "grab a flat white at Monmouth Coffee" not "visit a local cafe".`,
		location,
		strings.Join(context, "\n"),
		profileInstructions(in.Profile),
		prefBlock,
		userName,
		temp,
		condition)
}

func buildFollowUpPrompt(in FollowUpInput) string {
	location := in.City
	if in.Weather != nil && in.Weather.CityName != "" {
		location = in.Weather.CityName
	}
	if location == "" {
		location = "Unknown"
	}

	var context []string
	if in.Weather != nil {
		context = append(context, fmt.Sprintf("WEATHER: %.1f°C, %s", in.Weather.Temp, in.Weather.Condition))
	}
	if headlines := newsHeadlines(in.News, 3); len(headlines) > 0 {
		titles := make([]string, len(headlines))
		for i, h := range headlines {
			titles[i] = strings.TrimPrefix(h, "- ")
		}
		context = append(context, "NEWS: "+strings.Join(titles, "; "))
	}

	return fmt.Sprintf(`You are DayMate, a friendly local expert for %s.

CONTEXT:
%s

PREVIOUS PLAN GENERATED:
%s

USER SAYS:
"%s"

INSTRUCTIONS:
Answer the user's question or request naturally.
- Be helpful, specific, and friendly.
- If suggesting new places, use REAL names.
- Keep it concise (under 150 words).
- Don't repeat the whole plan, just address the specific request.

Response:`,
		location,
		strings.Join(context, "\n"),
		in.PreviousPlan,
		in.Message)
}

func profileInstructions(profile string) string {
	switch profile {
	case ProfileChild:
		return `PROFILE: FAMILY WITH CHILDREN
- Focus on kid-friendly activities (parks with playgrounds, interactive museums, zoos)
- Suggest family-friendly restaurants with kid menus
- Keep travel times short and manageable
- Mention facilities like restrooms or baby changing spots if relevant
- Avoid crowded bars or quiet art galleries unless they have kids' programs`
	case ProfileElderly:
		return `PROFILE: ELDERLY / RELAXED PACE
- Focus on accessible locations (flat ground, elevators, minimal stairs)
- Suggest comfortable seating availability
- Keep the pace relaxed and unhurried
- Avoid loud, crowded, or chaotic venues
- Suggest places with good accessibility and restrooms`
	default:
		return "PROFILE: STANDARD ADULT (General interest)"
	}
}

func newsHeadlines(articles []news.Article, limit int) []string {
	var headlines []string
	for _, a := range articles {
		if len(headlines) >= limit {
			break
		}
		if a.Title == "" {
			continue
		}
		headlines = append(headlines, "- "+a.Title)
	}
	return headlines
}

func trafficSummary(report *traffic.Report) string {
	if report == nil {
		return ""
	}

	var lines []string
	for _, rc := range report.RoadConditions {
		lines = append(lines, fmt.Sprintf("- %s: %s traffic (%.0f km/h, normally %.0f km/h)",
			rc.RoadName, rc.CongestionLevel, rc.SpeedKmh, rc.NormalSpeedKmh))
	}
	for _, in := range report.Incidents {
		line := fmt.Sprintf("- Incident (%s, %s)", in.Type, in.Severity)
		if in.Description != "" {
			line += ": " + in.Description
		}
		lines = append(lines, line)
	}
	for _, a := range report.Alerts {
		lines = append(lines, "- Alert: "+a.Title)
	}
	return strings.Join(lines, "\n")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
