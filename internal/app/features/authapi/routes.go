package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridleapp/gridle/internal/app/system/ratelimit"
)

// Routes mounts the auth endpoints. limiter is the strict auth tier; it
// wraps the credential endpoints so password guessing burns the budget
// quickly.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(limiter.Middleware)

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Post("/reset-password", h.HandleRequestReset)
	r.Put("/reset-password", h.HandleCompleteReset)

	if h.Google != nil {
		r.Get("/google", h.HandleGoogleStart)
		r.Get("/google/callback", h.HandleGoogleCallback)
	}

	return r
}
