package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/paging"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type updateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=60"`
	Role *string `json:"role" validate:"omitempty,oneof=user admin"`
	// true stamps the verification time, false clears it.
	EmailVerified *bool `json:"emailVerified"`
}

// usersDefaultLimit is the page size for the admin account listing when
// the caller does not ask for one.
const usersDefaultLimit = 10

// HandleListUsers returns one page of accounts. Query params: search
// (name or email substring), role, page, limit (default 10).
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r, usersDefaultLimit)
	filter := userstore.ListFilter{
		Search: query.Get(r, "search"),
		Role:   query.Get(r, "role"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, total, err := h.Users.List(ctx, filter, p.Skip(), int64(p.Limit))
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
		"users":      users,
		"pagination": paging.NewMeta(p, total),
		"stats":      map[string]any{"byRole": roles},
	}, "")
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("User"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("User"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, u, "")
}

// HandleUpdateUser edits a user's name or role. Admins cannot change
// their own role, which keeps at least one admin reachable.
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("User"))
		return
	}

	var req updateUserRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	if req.Role != nil && id == callerID {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindBadRequest, "You cannot change your own role"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	upd := userstore.AdminUpdate{
		Name: req.Name,
		Role: req.Role,
	}
	if req.EmailVerified != nil {
		var verified *time.Time
		if *req.EmailVerified {
			now := time.Now()
			verified = &now
		}
		upd.EmailVerified = &verified
	}

	u, err := h.Users.UpdateByAdmin(ctx, id, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("User"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user updated by admin",
		zap.String("user_id", id.Hex()),
		zap.String("admin_id", callerID.Hex()))
	httpx.OK(w, http.StatusOK, u, "User updated successfully")
}

// HandleDeleteUser removes an account and everything hanging off it:
// tasks, notes, projects, and group memberships. Groups the user created
// pass to their longest-standing remaining member, or are deleted when
// empty. Admins cannot delete their own account.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("User"))
		return
	}

	if id == callerID {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindBadRequest, "You cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, h.Log, httpx.NotFound("User"))
		return
	}

	if err := h.cascadeDelete(ctx, id); err != nil {
		// The account itself is gone; report the partial cleanup
		// rather than pretending the delete failed.
		h.Log.Error("user delete cascade incomplete",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}

	h.Log.Info("user deleted by admin",
		zap.String("user_id", id.Hex()),
		zap.String("admin_id", callerID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "User deleted successfully")
}

func (h *Handler) cascadeDelete(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := h.Tasks.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if _, err := h.Notes.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if _, err := h.Projects.DeleteByOwner(ctx, userID); err != nil {
		return err
	}

	// Reassign or remove groups the user created before pulling their
	// memberships, so successor selection still sees the full list.
	created, err := h.Groups.ListCreatedBy(ctx, userID)
	if err != nil {
		return err
	}
	for i := range created {
		if err := h.reassignOrDeleteGroup(ctx, &created[i], userID); err != nil {
			return err
		}
	}

	_, err = h.Groups.RemoveMemberEverywhere(ctx, userID)
	return err
}

// reassignOrDeleteGroup hands a group to its longest-standing remaining
// member, preferring group admins, or deletes it when the departing user
// was the only member.
func (h *Handler) reassignOrDeleteGroup(ctx context.Context, g *models.Group, departing primitive.ObjectID) error {
	successor := pickSuccessor(g, departing)
	if successor == primitive.NilObjectID {
		_, err := h.Groups.Delete(ctx, g.ID)
		return err
	}
	_, err := h.Groups.TransferOwner(ctx, g.ID, successor)
	return err
}

func pickSuccessor(g *models.Group, departing primitive.ObjectID) primitive.ObjectID {
	best := primitive.NilObjectID
	bestAdmin := false
	for _, m := range g.Members {
		if m.UserID == departing {
			continue
		}
		isAdmin := m.Role == models.GroupRoleAdmin
		// Members are stored in join order, so the first acceptable
		// candidate is the longest-standing one.
		if best == primitive.NilObjectID || (isAdmin && !bestAdmin) {
			best = m.UserID
			bestAdmin = isAdmin
		}
	}
	return best
}
