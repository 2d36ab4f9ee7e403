package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridleapp/gridle/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleGet)
		pr.Put("/", h.HandleUpdate)
	})

	return r
}
