package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/meteo/internal/citycheck"
)

// cityQuery is the ?q=&lang= pair shared by the weather routes.
type cityQuery struct {
	City string `validate:"required"`
	Lang string `validate:"oneof=en ua cs ru"`
}

// bindCityQuery parses and checks the query. It writes the error response
// itself and returns false when the request must stop.
func bindCityQuery(w http.ResponseWriter, r *http.Request) (cityQuery, bool) {
	q := cityQuery{
		City: strings.TrimSpace(r.URL.Query().Get("q")),
		Lang: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang"))),
	}
	if q.Lang == "" {
		q.Lang = "en"
	}

	if v := citycheck.Validate(q.City); !v.Valid {
		writeError(w, http.StatusUnprocessableEntity, "invalid_city", string(v.Reason))
		return q, false
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "lang must be one of en, ua, cs, ru")
		return q, false
	}
	return q, true
}
