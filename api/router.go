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

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/jobs", app.SubmitJobHandler)
		r.Post("/ideas", app.StoryIdeasHandler)

		r.Route("/library", func(r chi.Router) {
			r.Get("/", app.ListEntriesHandler)
			r.Delete("/", app.ClearLibraryHandler)
			r.Get("/{id}", app.GetEntryHandler)
			r.Delete("/{id}", app.DeleteEntryHandler)
			r.Get("/{id}/prompts", app.ScenePromptsHandler)
			r.Get("/{id}/similar", app.SimilarHandler)
			r.Post("/{id}/chat", app.ChatHandler)
		})
	})

	return r
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
