package authapi

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/validate"
)

// errBadCredentials is the single message for every credential failure,
// so responses never reveal whether the email exists.
var errBadCredentials = httpx.E(httpx.KindUnauthorized, "Invalid email or password")

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, errBadCredentials)
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	// Google-only accounts have no password hash; they cannot sign in
	// with credentials.
	if u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpx.WriteError(w, h.Log, errBadCredentials)
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()))
	httpx.OK(w, http.StatusOK, viewOf(u), "Signed in successfully")
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}
	httpx.OK(w, http.StatusOK, nil, "Signed out successfully")
}
