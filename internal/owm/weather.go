package owm

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/forecast"
)

// Current is the current-conditions record for a city.
type Current struct {
	ID          *int64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Country     string   `json:"country,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Temperature float64  `json:"temp"`
	FeelsLike   float64  `json:"feels_like"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

// Label is the display name used for bookmarks, ex: "London, GB".
func (c Current) Label() string {
	if c.Country == "" {
		return strings.TrimSpace(c.Name)
	}
	return strings.TrimSpace(c.Name + ", " + c.Country)
}

// City describes the place a forecast belongs to.
type City struct {
	ID       *int64 `json:"id,omitempty"`
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	Timezone *int   `json:"timezone,omitempty"` // offset from UTC in seconds
}

// Location returns the city's fixed UTC offset, or fallback when unknown.
func (c City) Location(fallback *time.Location) *time.Location {
	if c.Timezone == nil {
		return fallback
	}
	return time.FixedZone(c.Name, *c.Timezone)
}

type conditionPayload struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type mainPayload struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *float64 `json:"humidity"`
	Pressure  *float64 `json:"pressure"`
}

type windPayload struct {
	Speed *float64 `json:"speed"`
}

type currentPayload struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Coord *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
	Weather []conditionPayload `json:"weather"`
	Main    mainPayload        `json:"main"`
	Wind    windPayload        `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type forecastPayload struct {
	List []struct {
		Dt      int64              `json:"dt"`
		Main    mainPayload        `json:"main"`
		Weather []conditionPayload `json:"weather"`
		Wind    windPayload        `json:"wind"`
	} `json:"list"`
	City City `json:"city"`
}

func firstCondition(items []conditionPayload) conditionPayload {
	c := conditionPayload{Icon: forecast.DefaultIcon}
	if len(items) == 0 {
		return c
	}
	if items[0].Icon != "" {
		c.Icon = items[0].Icon
	}
	c.Description = items[0].Description
	return c
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Current fetches the current conditions for city.
func (c *Client) Current(ctx context.Context, city, lang string) (*Current, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(city))
	params.Set("units", "metric")
	params.Set("lang", weatherLang(lang))

	var p currentPayload
	if err := c.getJSON(ctx, c.baseURL+"/weather", params, &p); err != nil {
		return nil, err
	}

	cond := firstCondition(p.Weather)
	cur := &Current{
		ID:          p.ID,
		Name:        p.Name,
		Country:     p.Sys.Country,
		Temperature: valueOr(p.Main.Temp, 0),
		FeelsLike:   valueOr(p.Main.FeelsLike, 0),
		Humidity:    p.Main.Humidity,
		Pressure:    p.Main.Pressure,
		WindSpeed:   p.Wind.Speed,
		Icon:        cond.Icon,
		Description: cond.Description,
	}
	if p.Coord != nil {
		cur.Lat, cur.Lon = p.Coord.Lat, p.Coord.Lon
	}
	return cur, nil
}

// Forecast fetches the 5 day / 3 hour forecast for city.
func (c *Client) Forecast(ctx context.Context, city, lang string) ([]forecast.Sample, *City, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(city))
	params.Set("units", "metric")
	params.Set("lang", weatherLang(lang))

	var p forecastPayload
	if err := c.getJSON(ctx, c.baseURL+"/forecast", params, &p); err != nil {
		return nil, nil, err
	}

	samples := make([]forecast.Sample, 0, len(p.List))
	for _, item := range p.List {
		cond := firstCondition(item.Weather)
		samples = append(samples, forecast.Sample{
			Timestamp:   item.Dt,
			Temperature: valueOr(item.Main.Temp, 0),
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeed:   item.Wind.Speed,
			Icon:        cond.Icon,
			Description: cond.Description,
		})
	}
	place := p.City
	return samples, &place, nil
}
