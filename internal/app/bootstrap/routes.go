// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/gridleapp/gridle/internal/app/features/admin"
	authfeature "github.com/gridleapp/gridle/internal/app/features/authapi"
	groupsfeature "github.com/gridleapp/gridle/internal/app/features/groups"
	healthfeature "github.com/gridleapp/gridle/internal/app/features/health"
	notesfeature "github.com/gridleapp/gridle/internal/app/features/notes"
	profilefeature "github.com/gridleapp/gridle/internal/app/features/profile"
	projectsfeature "github.com/gridleapp/gridle/internal/app/features/projects"
	tasksfeature "github.com/gridleapp/gridle/internal/app/features/tasks"
	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	notestore "github.com/gridleapp/gridle/internal/app/store/notes"
	projectstore "github.com/gridleapp/gridle/internal/app/store/projects"
	statsstore "github.com/gridleapp/gridle/internal/app/store/stats"
	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/app/system/mailer"
	"github.com/gridleapp/gridle/internal/app/system/ratelimit"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Gridle mounts the JSON API feature
// routers here: auth, tasks, notes, groups, projects, profile, the admin
// surface, and the health probe.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	tasks := taskstore.New(db)
	notes := notestore.New(db)
	groups := groupstore.New(db)
	projects := projectstore.New(db)
	stats := statsstore.New(db)

	// One shared counter store, three policy tiers. The auth tier is the
	// tightest so credential stuffing burns out fast; the admin tier
	// keeps dashboard polling honest.
	counters := ratelimit.NewMemoryStore()
	authLimiter := ratelimit.New(counters, appCfg.RateAuthMax, appCfg.RateAuthWindow,
		"Too many authentication attempts, please try again later.")
	apiLimiter := ratelimit.New(counters, appCfg.RateAPIMax, appCfg.RateAPIWindow,
		"Too many requests, please try again later.")
	adminLimiter := ratelimit.New(counters, appCfg.RateAdminMax, appCfg.RateAdminWindow,
		"Too many admin requests, please try again later.")

	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)

	// Google sign-in is optional; a blank client ID leaves the routes unmounted.
	var googleOAuth *oauth2.Config
	if appCfg.GoogleClientID != "" {
		googleOAuth = &oauth2.Config{
			ClientID:     appCfg.GoogleClientID,
			ClientSecret: appCfg.GoogleClientSecret,
			RedirectURL:  appCfg.BaseURL + "/auth/google/callback",
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	r := chi.NewRouter()
	r.Use(httpx.Recoverer(logger))

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	// Mounted outside the rate-limited groups so probes never get 429s.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication (register, login, logout, password reset, Google OAuth)
	authHandler := authfeature.NewHandler(users, sessionMgr, mail, logger,
		appCfg.BaseURL, appCfg.ResetTokenExpiry, googleOAuth, []byte(appCfg.SessionKey))
	r.Mount("/auth", authfeature.Routes(authHandler, authLimiter))

	// Signed-in API surface, all under the general API tier.
	r.Group(func(api chi.Router) {
		api.Use(apiLimiter.Middleware)

		tasksHandler := tasksfeature.NewHandler(tasks, logger)
		api.Mount("/tasks", tasksfeature.Routes(tasksHandler, sessionMgr))

		notesHandler := notesfeature.NewHandler(notes, logger)
		api.Mount("/notes", notesfeature.Routes(notesHandler, sessionMgr))

		groupsHandler := groupsfeature.NewHandler(groups, tasks, users, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

		projectsHandler := projectsfeature.NewHandler(projects, logger)
		api.Mount("/projects", projectsfeature.Routes(projectsHandler, sessionMgr))

		profileHandler := profilefeature.NewHandler(users, logger)
		api.Mount("/user/profile", profilefeature.Routes(profileHandler, sessionMgr))
	})

	// Admin surface carries its own tier on top of the admin gate.
	adminHandler := adminfeature.NewHandler(users, tasks, notes, groups, projects, stats, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr, adminLimiter))

	return r, nil
}
