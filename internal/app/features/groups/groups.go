package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/joincode"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Private     bool   `json:"isPrivate"`
}

type updateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Private     *bool   `json:"isPrivate"`
}

type joinRequest struct {
	JoinCode string `json:"joinCode" validate:"required,min=6,max=8"`
}

// HandleList returns every group the caller belongs to.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Groups.ListForUser(ctx, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	views := make([]groupView, 0, len(groups))
	for i := range groups {
		v, err := h.viewOf(ctx, &groups[i])
		if err != nil {
			httpx.WriteError(w, h.Log, err)
			return
		}
		views = append(views, v)
	}

	httpx.OK(w, http.StatusOK, map[string]any{"groups": views}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	var req createRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.Create(ctx,
		htmlsanitize.Text(req.Name),
		htmlsanitize.Text(req.Description),
		req.Private, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	view, err := h.viewOf(ctx, &g)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", g.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.Created(w, view, "Group created successfully")
}

// HandleJoin adds the caller to the group carrying the submitted code.
// Joining a group the caller already belongs to succeeds without change.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	var req joinRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.JoinCode))
	if !joincode.Valid(code) {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindValidation, "Invalid join code"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.JoinByCode(ctx, code, userID)
	if err != nil {
		if errors.Is(err, groupstore.ErrBadJoinCode) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	view, err := h.viewOf(ctx, g)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group joined",
		zap.String("group_id", g.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, view, "Joined group successfully")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, ok := h.loadMemberGroup(ctx, w, chi.URLParam(r, "id"), userID)
	if !ok {
		return
	}

	view, err := h.viewOf(ctx, g)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	httpx.OK(w, http.StatusOK, view, "")
}

// HandleUpdate edits group metadata. Only members with the group admin
// role may edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadMemberGroup(ctx, w, chi.URLParam(r, "id"), userID)
	if !ok {
		return
	}
	if !h.memberIsAdmin(g, userID) {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindForbidden, "Only group admins can edit the group"))
		return
	}

	var req updateRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	upd := groupstore.Update{Private: req.Private}
	if req.Name != nil {
		clean := htmlsanitize.Text(*req.Name)
		upd.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Text(*req.Description)
		upd.Description = &clean
	}

	updated, err := h.Groups.Update(ctx, g.ID, upd)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	view, err := h.viewOf(ctx, updated)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	httpx.OK(w, http.StatusOK, view, "Group updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadMemberGroup(ctx, w, chi.URLParam(r, "id"), userID)
	if !ok {
		return
	}
	if !h.memberIsAdmin(g, userID) {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindForbidden, "Only group admins can delete the group"))
		return
	}

	if _, err := h.Groups.Delete(ctx, g.ID); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group deleted",
		zap.String("group_id", g.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Group deleted successfully")
}

// HandleLeave removes the caller's own membership. The last group admin
// cannot leave; they delete the group or hand it over first.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadMemberGroup(ctx, w, chi.URLParam(r, "id"), userID)
	if !ok {
		return
	}

	if h.memberIsAdmin(g, userID) && h.adminCount(g) == 1 {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindBadRequest,
			"The last admin cannot leave; transfer ownership or delete the group"))
		return
	}

	if err := h.Groups.Leave(ctx, g.ID, userID); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group left",
		zap.String("group_id", g.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Left group successfully")
}

// HandleListTasks returns the tasks attached to a group, newest first.
// Visible to members only.
func (h *Handler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadMemberGroup(ctx, w, chi.URLParam(r, "id"), userID)
	if !ok {
		return
	}

	tasks, err := h.Tasks.ListByGroup(ctx, g.ID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	// Resolve task owners to display names so the group view does not
	// show bare ObjectIDs for other members' tasks.
	ownerIDs := make([]primitive.ObjectID, 0, len(tasks))
	seen := make(map[primitive.ObjectID]bool, len(tasks))
	for _, t := range tasks {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ownerIDs = append(ownerIDs, t.UserID)
		}
	}
	refs, err := h.Users.GetRefs(ctx, ownerIDs)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	type groupTask struct {
		models.Task
		OwnerName string `json:"ownerName,omitempty"`
	}
	out := make([]groupTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, groupTask{Task: t, OwnerName: refs[t.UserID].Name})
	}

	httpx.OK(w, http.StatusOK, map[string]any{"tasks": out}, "")
}
