package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
)

type transferOwnerRequest struct {
	NewOwnerID string `json:"newOwnerId" validate:"required,len=24,hexadecimal"`
}

// HandleTransferGroupOwner reassigns a group to another of its members.
// The new owner's membership is promoted to group admin and the previous
// owner's entry is demoted.
func (h *Handler) HandleTransferGroupOwner(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
		return
	}

	var req transferOwnerRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	newOwnerID, err := primitive.ObjectIDFromHex(req.NewOwnerID)
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.E(httpx.KindValidation, "Invalid newOwnerId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.TransferOwner(ctx, groupID, newOwnerID)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
		case errors.Is(err, groupstore.ErrNotMember):
			httpx.WriteError(w, h.Log, httpx.E(httpx.KindBadRequest, "New owner must already be a member of the group"))
		default:
			httpx.WriteError(w, h.Log, err)
		}
		return
	}

	h.Log.Info("group ownership transferred",
		zap.String("group_id", groupID.Hex()),
		zap.String("new_owner_id", newOwnerID.Hex()),
		zap.String("admin_id", callerID.Hex()))
	httpx.OK(w, http.StatusOK, g, "Group ownership transferred")
}
