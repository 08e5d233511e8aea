package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/forecast"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
)

// placeholder stands in for a reading the provider did not send.
const placeholder = "-"

type currentView struct {
	Name        string `json:"name"` // localized when possible, ex: "Київ, UA"
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
	WindSpeed   string `json:"wind_speed"`
	Icon        string `json:"icon"`
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
}

type dailyView struct {
	Day         string `json:"day"`
	Date        string `json:"date"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Icon        string `json:"icon"`
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
}

type weatherResponse struct {
	Current  currentView    `json:"current"`
	Daily    []dailyView    `json:"daily"`
	Bookmark bookmark.Entry `json:"bookmark"` // what POST /api/bookmarks expects to save this city
}

func reading(p *float64) string {
	if p == nil {
		return placeholder
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func withCountry(name, country string) string {
	if country == "" {
		return name
	}
	return name + ", " + country
}

// Weather returns current conditions and the daily summaries for ?q=.
func Weather(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := bindCityQuery(w, r)
		if !ok {
			return
		}
		ctx := r.Context()

		cur, err := d.Weather.Current(ctx, q.City, q.Lang)
		if err != nil {
			writeUpstreamError(w, d, q.City, err)
			return
		}
		samples, city, err := d.Weather.Forecast(ctx, q.City, q.Lang)
		if err != nil {
			writeUpstreamError(w, d, q.City, err)
			return
		}

		name := cur.Name
		if cur.Lat != nil && cur.Lon != nil {
			local, found, lerr := d.Weather.LocalName(ctx, *cur.Lat, *cur.Lon, q.Lang)
			if lerr != nil {
				d.Logger.Debug("localized name lookup failed",
					logger.String("city", q.City), logger.Error(lerr))
			} else if found {
				name = local
			}
		}

		resp := weatherResponse{
			Current:  currentViewOf(cur, withCountry(name, cur.Country)),
			Daily:    dailyViews(samples, city),
			Bookmark: bookmarkOf(cur),
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func currentViewOf(cur *owm.Current, name string) currentView {
	return currentView{
		Name:        name,
		Temp:        forecast.Round(cur.Temperature),
		FeelsLike:   forecast.Round(cur.FeelsLike),
		Humidity:    reading(cur.Humidity),
		Pressure:    reading(cur.Pressure),
		WindSpeed:   reading(cur.WindSpeed),
		Icon:        cur.Icon,
		IconURL:     forecast.IconURL(cur.Icon),
		Description: forecast.Capitalize(cur.Description),
	}
}

func dailyViews(samples []forecast.Sample, city *owm.City) []dailyView {
	loc := time.Local
	if city != nil {
		loc = city.Location(time.Local)
	}

	days := forecast.DailySummaries(samples, loc, forecast.MaxDays)
	views := make([]dailyView, 0, len(days))
	for _, day := range days {
		views = append(views, dailyView{
			Day:         day.Day,
			Date:        day.Date.Format("2006-01-02"),
			Min:         day.Min,
			Max:         day.Max,
			Icon:        day.Icon,
			IconURL:     forecast.IconURL(day.Icon),
			Description: day.Description,
		})
	}
	return views
}

func bookmarkOf(cur *owm.Current) bookmark.Entry {
	if cur.ID != nil {
		return bookmark.NewEntry(*cur.ID, cur.Label())
	}
	return bookmark.LabelOnly(cur.Label())
}
