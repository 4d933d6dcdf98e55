package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/felicityfest/felicity-backend/internal/config"
	"github.com/felicityfest/felicity-backend/internal/transport/http/handlers"
	authmw "github.com/felicityfest/felicity-backend/internal/transport/http/middleware"
)

func New(
	events *handlers.EventsHandler,
	admissions *handlers.AdmissionsHandler,
	forum *handlers.ForumHandler,
	health *handlers.HealthHandler,
	ws http.Handler,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", health.Healthz)

	// websocket handshake carries its own token; no auth middleware here
	r.Get("/ws", ws.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", events.ListPublic)
		r.Get("/events/{event_id}", events.GetPublic)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/events", events.Create)
			r.Patch("/events/{event_id}", events.Update)
			r.Post("/events/{event_id}/publish", events.Publish)
			r.Post("/events/{event_id}/transition", events.Transition)
			r.Get("/organizer/events", events.ListMine)
			r.Get("/events/{event_id}/analytics", events.Analytics)
			r.Get("/events/{event_id}/participants", events.Participants)

			r.Post("/events/{event_id}/register", admissions.Register)
			r.Post("/events/{event_id}/purchase", admissions.Purchase)
			r.Get("/me/registrations", admissions.ListMine)

			r.Get("/events/{event_id}/forum", forum.Access)
			r.Get("/events/{event_id}/forum/messages", forum.List)
			r.Post("/events/{event_id}/forum/messages", forum.Post)
			r.Post("/events/{event_id}/forum/messages/{message_id}/pin", forum.Pin)
			r.Delete("/events/{event_id}/forum/messages/{message_id}", forum.Delete)
			r.Post("/events/{event_id}/forum/messages/{message_id}/reactions", forum.React)
		})
	})

	return r
}
