package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/forecast"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
)

type hourlyView struct {
	Timestamp   int64  `json:"ts"`
	Time        string `json:"time"` // RFC 3339 in the city's offset
	Hour        string `json:"hour"` // ex: "15:00"
	Temp        int    `json:"temp"`
	Icon        string `json:"icon"`
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
}

type hourlyResponse struct {
	City   string       `json:"city"`
	Hourly []hourlyView `json:"hourly"`
}

// Hourly returns the synthesized hourly view for ?q=, in the city's own
// UTC offset.
func Hourly(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := bindCityQuery(w, r)
		if !ok {
			return
		}

		samples, city, err := d.Weather.Forecast(r.Context(), q.City, q.Lang)
		if err != nil {
			writeUpstreamError(w, d, q.City, err)
			return
		}

		loc := time.Local
		name := q.City
		if city != nil {
			loc = city.Location(time.Local)
			if city.Name != "" {
				name = withCountry(city.Name, city.Country)
			}
		}

		ticks := forecast.SynthesizeHourly(samples, d.Now().In(loc))
		views := make([]hourlyView, 0, len(ticks))
		for _, h := range ticks {
			views = append(views, hourlyView{
				Timestamp:   h.Timestamp,
				Time:        h.Time.Format(time.RFC3339),
				Hour:        h.Time.Format("15:04"),
				Temp:        h.Temperature,
				Icon:        h.Icon,
				IconURL:     forecast.IconURL(h.Icon),
				Description: h.Description,
			})
		}

		writeJSON(w, http.StatusOK, hourlyResponse{City: name, Hourly: views})
	}
}
