package httpserver

import (
	"net/http"
	"time"

	"checklist-app-go/internal/config"
	"checklist-app-go/internal/transport/httpserver/handler"
	"checklist-app-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/checklist", handlers.GetChecklist)
		r.Post("/checklist", handlers.SaveChecklist)
		r.Post("/checklist/toggle", handlers.ToggleCheck)
		r.Get("/checklist/items", handlers.GetItems)
		r.Post("/checklist/items", handlers.ReplaceItems)
		r.Get("/checklist/last-completions", handlers.LastCompletions)
		r.Post("/checklist/photo", handlers.AttachPhoto)

		r.Get("/summary/calendar", handlers.CalendarSummary)

		r.Post("/upload/{item_id}", handlers.UploadPhoto)
	})

	return r
}
