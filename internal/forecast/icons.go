package forecast

const iconBaseURL = "https://basmilius.github.io/weather-icons/production/fill/all/"

var iconNames = map[string]string{
	"01d": "clear-day",
	"01n": "clear-night",
	"02d": "partly-cloudy-day",
	"02n": "partly-cloudy-night",
	"03d": "cloudy",
	"03n": "cloudy",
	"04d": "overcast",
	"04n": "overcast",
	"09d": "showers-day",
	"09n": "showers-night",
	"10d": "rain",
	"10n": "rain",
	"11d": "thunderstorms",
	"11n": "thunderstorms",
	"13d": "snow",
	"13n": "snow",
	"50d": "mist",
	"50n": "mist",
}

// IconURL maps an OpenWeatherMap icon code to an SVG from the weather-icons
// fill set. Unknown codes render as "cloudy".
func IconURL(code string) string {
	name, ok := iconNames[code]
	if !ok {
		name = "cloudy"
	}
	return iconBaseURL + name + ".svg"
}
