package tasks

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

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

	task := models.Task{
		Name:        htmlsanitize.Text(req.Name),
		Description: htmlsanitize.Text(req.Description),
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		UserID:      userID,
		Tags:        req.Tags,
		Attachments: buildAttachments(req.Attachments),
	}
	if req.ProjectID != "" {
		id, err := primitive.ObjectIDFromHex(req.ProjectID)
		if err != nil {
			httpx.WriteError(w, h.Log, httpx.E(httpx.KindValidation, "Invalid projectId"))
			return
		}
		task.ProjectID = &id
	}
	if req.GroupID != "" {
		id, err := primitive.ObjectIDFromHex(req.GroupID)
		if err != nil {
			httpx.WriteError(w, h.Log, httpx.E(httpx.KindValidation, "Invalid groupId"))
			return
		}
		task.GroupID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Tasks.Create(ctx, task)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.Created(w, created, "Task created successfully")
}
