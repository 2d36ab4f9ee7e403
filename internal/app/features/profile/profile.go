package profile

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/authz"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/timeouts"
	"github.com/gridleapp/gridle/internal/app/system/validate"
)

// Handler serves the signed-in user's own profile and preferences.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type updateRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=2,max=60"`
	EmailNotifications    *bool   `json:"emailNotifications"`
	PopupNotifications    *bool   `json:"popupNotifications"`
	ReminderFrequency     *string `json:"reminderFrequency" validate:"omitempty,max=50"`
	AIPrioritization      *bool   `json:"aiPrioritization"`
	AIReminderIntensity   *string `json:"aiReminderIntensity" validate:"omitempty,oneof=Low Medium High"`
	GrammarAutocorrection *bool   `json:"grammarAutocorrection"`
}

// HandleGet returns the caller's full profile, preferences included.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Session refers to an account that no longer exists.
			httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	httpx.OK(w, http.StatusOK, u, "")
}

// HandleUpdate applies a partial edit to the caller's name and
// preferences. Email and role are not editable here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
		return
	}

	var req updateRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		Name:                  req.Name,
		EmailNotifications:    req.EmailNotifications,
		PopupNotifications:    req.PopupNotifications,
		ReminderFrequency:     req.ReminderFrequency,
		AIPrioritization:      req.AIPrioritization,
		AIReminderIntensity:   req.AIReminderIntensity,
		GrammarAutocorrection: req.GrammarAutocorrection,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.ErrUnauthorized)
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", userID.Hex()))
	httpx.OK(w, http.StatusOK, u, "Profile updated successfully")
}
