package admin

import (
	"context"
	"net/http"

	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
)

// Dashboard aggregation knobs.
const (
	trendDays       = 30
	activeUserLimit = 10
)

// HandleStats returns the dashboard block: totals per collection, the
// 30-day registration trend, the task status breakdown, and the ten most
// active users by task count.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	totals, err := h.Stats.CountAll(ctx)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	trend, err := h.Stats.RegistrationTrend(ctx, trendDays)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	breakdown, err := h.Stats.TaskStatusBreakdown(ctx)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	active, err := h.Stats.MostActiveUsers(ctx, activeUserLimit)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	roles, err := h.Users.CountByRole(ctx)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"totals":            totals,
		"usersByRole":       roles,
		"registrationTrend": trend,
		"taskStatusCounts":  breakdown,
		"mostActiveUsers":   active,
	}, "")
}
