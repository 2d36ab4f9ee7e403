package authapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/validate"
	"github.com/gridleapp/gridle/internal/domain/models"
)

// HandleRegister creates a credential account. The new user signs in
// with POST /auth/login afterwards; registration itself does not start
// a session.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	created, err := h.Users.Create(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpx.WriteError(w, h.Log, httpx.E(httpx.KindConflict, "An account with this email already exists"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", created.ID.Hex()))
	httpx.Created(w, viewOf(&created), "Account created successfully")
}
