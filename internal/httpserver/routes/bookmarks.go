package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.ListBookmarks(d))
	r.Post("/api/bookmarks", handlers.SaveBookmark(d))
	r.Delete("/api/bookmarks", handlers.DeleteBookmark(d))
}
