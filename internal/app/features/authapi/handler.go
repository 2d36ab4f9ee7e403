package authapi

import (
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/app/system/mailer"
)

// Handler is the shared dependency container for the auth feature. It
// covers credential sign-up and sign-in, Google OAuth, and the password
// reset flow.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Mail     *mailer.Mailer
	Log      *zap.Logger

	// BaseURL is the externally visible origin, used to build reset
	// links and the OAuth redirect URL.
	BaseURL  string
	ResetTTL time.Duration

	// Google is nil when OAuth is not configured; the routes then
	// answer 404.
	Google *oauth2.Config

	// stateCodec signs the OAuth state cookie.
	stateCodec *securecookie.SecureCookie
}

// NewHandler constructs the auth Handler. hashKey signs the OAuth state
// cookie and should be the session key or similar secret material.
func NewHandler(users *userstore.Store, sessions *auth.SessionManager, mail *mailer.Mailer, log *zap.Logger, baseURL string, resetTTL time.Duration, google *oauth2.Config, hashKey []byte) *Handler {
	return &Handler{
		Users:      users,
		Sessions:   sessions,
		Mail:       mail,
		Log:        log,
		BaseURL:    baseURL,
		ResetTTL:   resetTTL,
		Google:     google,
		stateCodec: securecookie.New(hashKey, nil),
	}
}
