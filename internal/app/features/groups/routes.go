package groups

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridleapp/gridle/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Post("/join", h.HandleJoin)

		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/leave", h.HandleLeave)
		pr.Get("/{id}/tasks", h.HandleListTasks)
	})

	return r
}
