package weather

// Data is the weather view the plan and API responses carry.
type Data struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
	CityName    string  `json:"city_name"`
	Country     string  `json:"country"`
}

// wmoEntry maps a WMO weather-interpretation code to display fields.
type wmoEntry struct {
	Condition   string
	Description string
	Icon        string
}

// wmoCodes covers the WMO weather interpretation codes Open-Meteo emits.
var wmoCodes = map[int]wmoEntry{
	0:  {"Clear", "clear sky", "01d"},
	1:  {"Clear", "mainly clear", "01d"},
	2:  {"Clouds", "partly cloudy", "02d"},
	3:  {"Clouds", "overcast", "03d"},
	45: {"Fog", "fog", "50d"},
	48: {"Fog", "depositing rime fog", "50d"},
	51: {"Drizzle", "light drizzle", "09d"},
	53: {"Drizzle", "moderate drizzle", "09d"},
	55: {"Drizzle", "dense drizzle", "09d"},
	56: {"Drizzle", "light freezing drizzle", "09d"},
	57: {"Drizzle", "dense freezing drizzle", "09d"},
	61: {"Rain", "slight rain", "10d"},
	63: {"Rain", "moderate rain", "10d"},
	65: {"Rain", "heavy rain", "10d"},
	66: {"Rain", "light freezing rain", "13d"},
	67: {"Rain", "heavy freezing rain", "13d"},
	71: {"Snow", "slight snow", "13d"},
	73: {"Snow", "moderate snow", "13d"},
	75: {"Snow", "heavy snow", "13d"},
	77: {"Snow", "snow grains", "13d"},
	80: {"Rain", "slight rain showers", "09d"},
	81: {"Rain", "moderate rain showers", "09d"},
	82: {"Rain", "violent rain showers", "09d"},
	85: {"Snow", "slight snow showers", "13d"},
	86: {"Snow", "heavy snow showers", "13d"},
	95: {"Thunderstorm", "thunderstorm", "11d"},
	96: {"Thunderstorm", "thunderstorm with slight hail", "11d"},
	99: {"Thunderstorm", "thunderstorm with heavy hail", "11d"},
}

// FromWMO maps a WMO code to (condition, description, icon). Unknown codes
// read as clear sky, matching the upstream default.
func FromWMO(code int) (string, string, string) {
	e, ok := wmoCodes[code]
	if !ok {
		e = wmoEntry{"Clear", "clear sky", "01d"}
	}
	return e.Condition, e.Description, e.Icon
}
