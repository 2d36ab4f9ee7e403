package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/app/system/ratelimit"
)

// Routes mounts the admin endpoints. The strict limiter tier applies on
// top of the admin guard; these are low-volume operations.
func Routes(h *Handler, sm *auth.SessionManager, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(limiter.Middleware)
		pr.Use(sm.RequireAdmin)

		pr.Get("/users", h.HandleListUsers)
		pr.Get("/users/{id}", h.HandleGetUser)
		pr.Put("/users/{id}", h.HandleUpdateUser)
		pr.Delete("/users/{id}", h.HandleDeleteUser)

		pr.Get("/stats", h.HandleStats)

		pr.Put("/groups/{id}/owner", h.HandleTransferGroupOwner)
	})

	return r
}
