package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/logger"
)

const maxBookmarkBody = 4 << 10

type bookmarksResponse struct {
	Bookmarks []bookmark.Entry `json:"bookmarks"`
}

type saveBookmarkRequest struct {
	ID    *int64 `json:"id" validate:"omitempty,gt=0"`
	Label string `json:"label" validate:"required,max=200"`
}

// ListBookmarks returns the saved cities in insertion order.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookmarksResponse{Bookmarks: d.Bookmarks.List(r.Context())})
	}
}

// SaveBookmark adds {"id": 2643743, "label": "London, GB"} unless an
// equivalent entry is already saved, then returns the list.
func SaveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveBookmarkRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBookmarkBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "body must be {\"id\": number|null, \"label\": string}")
			return
		}
		req.Label = strings.TrimSpace(req.Label)
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}

		e := bookmark.LabelOnly(req.Label)
		if req.ID != nil {
			e = bookmark.NewEntry(*req.ID, req.Label)
		}

		ctx := r.Context()
		d.Bookmarks.Save(ctx, e)
		d.Logger.Debug("bookmark saved", logger.String("label", e.Label))
		writeJSON(w, http.StatusOK, bookmarksResponse{Bookmarks: d.Bookmarks.List(ctx)})
	}
}

// DeleteBookmark removes every entry matching ?id= or ?label=, then returns
// the list.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var ref bookmark.Ref
		switch {
		case query.Get("id") != "":
			id, err := strconv.ParseInt(query.Get("id"), 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_request", "id must be an integer")
				return
			}
			ref = bookmark.ByID(id)
		case query.Has("label"):
			ref = bookmark.ByLabel(query.Get("label"))
		default:
			writeError(w, http.StatusBadRequest, "bad_request", "id or label is required")
			return
		}

		ctx := r.Context()
		d.Bookmarks.Remove(ctx, ref)
		d.Logger.Debug("bookmark removed", logger.String("ref", ref.String()))
		writeJSON(w, http.StatusOK, bookmarksResponse{Bookmarks: d.Bookmarks.List(ctx)})
	}
}
