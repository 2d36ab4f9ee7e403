package authapi

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/mailer"
	"github.com/gridleapp/gridle/internal/app/system/validate"
)

// resetAccepted is returned whether or not the email matched an account,
// so the endpoint cannot be used to probe for registered addresses.
const resetAccepted = "If an account exists for this email, a reset link has been sent"

// HandleRequestReset starts the password reset flow: it stores a fresh
// single-use token on the account and emails a link carrying it.
func (h *Handler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.OK(w, http.StatusOK, nil, resetAccepted)
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	token, err := newResetToken()
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	expires := time.Now().Add(h.ResetTTL)
	if err := h.Users.SetResetToken(r.Context(), u.ID, token, expires); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	email := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  "Gridle",
		ResetLink: h.BaseURL + "/reset-password?token=" + token,
		ExpiresIn: h.ResetTTL.String(),
	})
	email.To = u.Email

	// Send failures are logged but not surfaced; the response is the
	// same either way.
	if err := h.Mail.Send(r.Context(), email); err != nil {
		h.Log.Error("send reset email", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	httpx.OK(w, http.StatusOK, nil, resetAccepted)
}

// HandleCompleteReset finishes the flow: a valid unexpired token plus a
// new password replaces the credential and clears the token.
func (h *Handler) HandleCompleteReset(w http.ResponseWriter, r *http.Request) {
	var req completeResetRequest
	if err := validate.Request(r, &req); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	u, err := h.Users.GetByResetToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.WriteError(w, h.Log, httpx.E(httpx.KindBadRequest, "Invalid or expired reset token"))
			return
		}
		httpx.WriteError(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	if err := h.Users.SetPassword(r.Context(), u.ID, string(hash)); err != nil {
		httpx.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("password reset completed", zap.String("user_id", u.ID.Hex()))
	httpx.OK(w, http.StatusOK, nil, "Password has been reset")
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
