package notes

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	notestore "github.com/gridleapp/gridle/internal/app/store/notes"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/paging"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type createRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=10000"`
	Summary string   `json:"summary" validate:"max=500"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
}

type updateRequest struct {
	Title    *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string   `json:"content" validate:"omitempty,max=10000"`
	Summary  *string   `json:"summary" validate:"omitempty,max=500"`
	Archived *bool     `json:"archived"`
	Tags     *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// HandleList returns one page of the caller's notes, most recently
// updated first. Query params: archived (true for archived notes only,
// all for both; archived notes are excluded by default), search, page,
// limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	p := paging.Parse(r, paging.DefaultLimit)
	filter := notestore.ListFilter{
		Archived: query.Get(r, "archived"),
		Search:   query.Get(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notes, total, err := h.Notes.ListOwned(ctx, userID, filter, p.Skip(), int64(p.Limit))
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"notes":      notes,
		"pagination": paging.NewMeta(p, total),
	}, "")
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

	created, err := h.Notes.Create(ctx, models.Note{
		Title:   htmlsanitize.Text(req.Title),
		Content: htmlsanitize.Text(req.Content),
		Summary: htmlsanitize.Text(req.Summary),
		Tags:    req.Tags,
		UserID:  userID,
	})
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("note created",
		zap.String("note_id", created.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.Created(w, created, "Note created successfully")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	note, err := h.Notes.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, note, "")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
		return
	}

	var req updateRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	upd := notestore.Update{Archived: req.Archived, Tags: req.Tags}
	if req.Title != nil {
		clean := htmlsanitize.Text(*req.Title)
		upd.Title = &clean
	}
	if req.Content != nil {
		clean := htmlsanitize.Text(*req.Content)
		upd.Content = &clean
	}
	if req.Summary != nil {
		clean := htmlsanitize.Text(*req.Summary)
		upd.Summary = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	note, err := h.Notes.UpdateOwned(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, note, "Note updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notes.DeleteOwned(ctx, id, userID)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, h.Log, httpx.NotFound("Note"))
		return
	}

	h.Log.Info("note deleted",
		zap.String("note_id", id.Hex()),
		zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Note deleted successfully")
}
