package projects

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	projectstore "github.com/gridleapp/gridle/internal/app/store/projects"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Projects: projects, Log: logger}
}

type createRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	Color       string     `json:"color" validate:"required,hexcolor"`
	Status      string     `json:"status" validate:"omitempty,oneof=active completed on-hold cancelled"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type updateRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Color       *string    `json:"color" validate:"omitempty,hexcolor"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active completed on-hold cancelled"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := h.Projects.ListOwned(ctx, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"projects": projects}, "")
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

	created, err := h.Projects.Create(ctx, models.Project{
		Name:        htmlsanitize.Text(req.Name),
		Description: htmlsanitize.Text(req.Description),
		Color:       req.Color,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UserID:      userID,
	})
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.Created(w, created, "Project created successfully")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, project, "")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
		return
	}

	var req updateRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	upd := projectstore.Update{
		Color:     req.Color,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Name != nil {
		clean := htmlsanitize.Text(*req.Name)
		upd.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Text(*req.Description)
		upd.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.UpdateOwned(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, project, "Project updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Projects.DeleteOwned(ctx, id, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, h.Log, httpx.NotFound("Project"))
		return
	}

	h.Log.Info("project deleted",
		zap.String("project_id", id.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Project deleted successfully")
}
