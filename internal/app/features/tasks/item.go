package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, task, "")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
		return
	}

	var req updateRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	upd := taskstore.Update{
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Category: req.Category,
		Status:   req.Status,
		Tags:     req.Tags,
	}
	if req.Name != nil {
		clean := htmlsanitize.Text(*req.Name)
		upd.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Text(*req.Description)
		upd.Description = &clean
	}
	if req.Attachments != nil {
		built := buildAttachments(*req.Attachments)
		if built == nil {
			built = []models.Attachment{}
		}
		upd.Attachments = &built
	}
	if upd.ProjectID, err = parseOptionalID(req.ProjectID); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	if upd.GroupID, err = parseOptionalID(req.GroupID); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Tasks.UpdateOwned(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, task, "Task updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Tasks.DeleteOwned(ctx, id, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, h.Log, httpx.NotFound("Task"))
		return
	}

	h.Log.Info("task deleted",
		zap.String("task_id", id.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Task deleted successfully")
}
