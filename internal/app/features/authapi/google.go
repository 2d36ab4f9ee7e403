package authapi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/domain/models"
)

const stateCookie = "gridle-oauth-state"

// HandleGoogleStart redirects to Google's consent screen. The state
// value rides along in a signed short-lived cookie and is checked on
// the way back.
func (h *Handler) HandleGoogleStart(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		h.Log.Error("generate oauth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	encoded, err := h.stateCodec.Encode(stateCookie, state)
	if err != nil {
		h.Log.Error("encode oauth state cookie", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback finishes the OAuth flow: state check, code
// exchange, profile fetch, then sign-in. Unknown emails get an account
// created from the Google profile; known emails get the Google identity
// linked.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("google oauth denied", zap.String("error", errParam))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	if !h.validState(r) {
		h.Log.Warn("invalid oauth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.Google.Exchange(ctx, code)
	if err != nil {
		h.Log.Error("exchange oauth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	info, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("fetch google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	u, err := h.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		h.Log.Error("resolve google user", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("google sign in", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in via google", zap.String("user_id", u.ID.Hex()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) validState(r *http.Request) bool {
	state := r.URL.Query().Get("state")
	if state == "" {
		return false
	}
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return false
	}
	var stored string
	if err := h.stateCodec.Decode(stateCookie, c.Value, &stored); err != nil {
		return false
	}
	return stored == state
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *Handler) findOrCreateGoogleUser(ctx context.Context, info *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByGoogleID(ctx, info.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Existing credential account with the same address gets the
	// Google identity linked instead of a duplicate account.
	u, err = h.Users.GetByEmail(ctx, info.Email)
	if err == nil {
		if err := h.Users.LinkGoogle(ctx, u.ID, info.ID, info.Picture); err != nil {
			return nil, err
		}
		return h.Users.GetByID(ctx, u.ID)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	u2 := models.User{
		Name:     info.Name,
		Email:    info.Email,
		GoogleID: info.ID,
		Image:    info.Picture,
	}
	if info.EmailVerified {
		now := time.Now()
		u2.EmailVerified = &now
	}
	created, err := h.Users.Create(ctx, u2)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("incomplete user info from google")
	}
	return &info, nil
}

func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
