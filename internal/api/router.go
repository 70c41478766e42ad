package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", app.HomeHandler)
	r.Post("/", app.AnalyzeHandler)
	r.Get("/get_csv", app.DownloadCSVHandler)
	r.Get("/uploads/{name}", app.UploadedImageHandler)
	r.Get("/stats", app.StatsHandler)
	r.Get("/ping", PingHandler)

	return r
}
