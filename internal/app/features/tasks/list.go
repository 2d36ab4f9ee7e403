package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"

	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/paging"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
)

// HandleList returns one page of the caller's tasks, due-date ascending.
// Query params: status, category, search, page, limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	p := paging.Parse(r, paging.DefaultLimit)
	filter := taskstore.ListFilter{
		Status:   query.Get(r, "status"),
		Category: query.Get(r, "category"),
		Search:   query.Get(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, total, err := h.Tasks.ListOwned(ctx, userID, filter, p.Skip(), int64(p.Limit))
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"tasks":      tasks,
		"pagination": paging.NewMeta(p, total),
	}, "")
}
