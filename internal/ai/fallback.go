package ai

import (
	"fmt"
	"strings"
)

// fallbackPlan produces a rule-based plan when the model is unavailable.
// It only needs temperature and a coarse condition string.
func fallbackPlan(in PlanInput) string {
	hasWeather := in.Weather != nil

	temp := 20.0
	condition := "unknown"
	location := in.City
	if location == "" {
		location = "your area"
	}
	if hasWeather {
		temp = in.Weather.Temp
		condition = strings.ToLower(in.Weather.Condition)
		if in.Weather.CityName != "" {
			location = in.Weather.CityName
		}
	}

	parts := []string{fmt.Sprintf("## Daily Plan for %s\n", location)}

	if !hasWeather {
		parts = append(parts, "*Note: Weather data unavailable. Here are flexible recommendations:*\n")
	}

	parts = append(parts, "### Morning")
	switch {
	case !hasWeather:
		parts = append(parts,
			"- Check the weather before heading out",
			"- Keep an umbrella handy just in case",
			"- Great time for morning exercise or a walk")
	case hasAny(condition, "rain", "storm", "drizzle"):
		parts = append(parts,
			"- Don't forget your umbrella! Rain is expected today.",
			"- Consider indoor exercise like yoga or home workout.")
	case temp > 30:
		parts = append(parts,
			"- Start your day early to avoid peak heat.",
			"- Stay hydrated - keep water with you.")
	case temp < 10:
		parts = append(parts,
			"- Bundle up! It's cold outside.",
			"- A warm breakfast will help start your day right.")
	default:
		parts = append(parts,
			"- Great weather for a morning walk or jog!",
			"- Enjoy breakfast outdoors if possible.")
	}

	parts = append(parts, "\n### Afternoon")
	switch {
	case !hasWeather:
		parts = append(parts,
			"- Good time for errands and tasks",
			"- Plan both indoor and outdoor options")
	case hasAny(condition, "rain", "storm"):
		parts = append(parts,
			"- Good time for indoor activities: reading, movies, or catching up on work.",
			"- If you must go out, plan trips between rain showers.")
	case temp > 30:
		parts = append(parts,
			"- Stay indoors during peak sun hours (12-3 PM).",
			"- Visit air-conditioned places like malls or libraries.")
	case hasAny(condition, "clear", "sun"):
		parts = append(parts,
			"- Perfect weather for outdoor activities!",
			"- Consider a lunch picnic or outdoor café.")
	default:
		parts = append(parts,
			"- Good time for errands and outdoor tasks.",
			"- Check local events happening today.")
	}

	parts = append(parts, "\n### Evening")
	switch {
	case !hasWeather:
		parts = append(parts,
			"- Perfect time for dinner plans or relaxation",
			"- Consider both indoor and outdoor dining options")
	case strings.Contains(condition, "rain"):
		parts = append(parts, "- Cozy evening indoors - perfect for cooking or movies.")
	case temp > 25:
		parts = append(parts, "- Enjoy the cooler evening air with a walk.")
	default:
		parts = append(parts, "- Great time for dinner out or evening activities.")
	}

	if len(in.News) > 0 && in.News[0].Title != "" {
		parts = append(parts,
			"\n### Stay Informed",
			"- Check local news: "+in.News[0].Title)
	}

	if in.Traffic != nil && in.Traffic.HasHighPriorityAlerts {
		parts = append(parts,
			"\n### Traffic",
			"- There are high-priority traffic alerts today; allow extra travel time.")
	}

	return strings.Join(parts, "\n")
}

// hasAny reports whether s contains any of the substrings.
func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
