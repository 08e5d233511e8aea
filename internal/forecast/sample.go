package forecast

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultIcon is used when the provider omits an icon code.
const DefaultIcon = "01d"

// Sample is one coarse forecast point as delivered by the provider.
type Sample struct {
	Timestamp   int64    `json:"dt"` // epoch seconds
	Temperature float64  `json:"temp"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

func (s Sample) millis() int64 { return s.Timestamp * 1000 }

func (s Sample) icon() string {
	if s.Icon == "" {
		return DefaultIcon
	}
	return s.Icon
}

// Capitalize upper-cases the first character of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Round rounds half toward positive infinity, so -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// withDaylight rewrites the d/n suffix of an icon code to match the hour.
func withDaylight(icon string, hour int) string {
	day := hour >= 6 && hour < 18
	switch {
	case day && strings.HasSuffix(icon, "n"):
		return strings.TrimSuffix(icon, "n") + "d"
	case !day && strings.HasSuffix(icon, "d"):
		return strings.TrimSuffix(icon, "d") + "n"
	default:
		return icon
	}
}
