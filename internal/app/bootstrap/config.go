// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Gridle.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: GRIDLE_MONGO_URI, GRIDLE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "gridle", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "gridle-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@gridle.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Gridle", Desc: "From display name"},

	// Base URL for reset links and OAuth callbacks
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links and OAuth redirects"},

	// Password reset settings
	{Name: "reset_token_expiry", Default: "1h", Desc: "Password reset link expiry (e.g., 30m, 1h)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Rate limiting ceilings (requests per window)
	{Name: "rate_auth_max", Default: 5, Desc: "Auth endpoint requests allowed per window"},
	{Name: "rate_auth_window", Default: "15m", Desc: "Auth rate limit window"},
	{Name: "rate_api_max", Default: 100, Desc: "API requests allowed per window"},
	{Name: "rate_api_window", Default: "15m", Desc: "API rate limit window"},
	{Name: "rate_admin_max", Default: 10, Desc: "Admin endpoint requests allowed per window"},
	{Name: "rate_admin_window", Default: "1m", Desc: "Admin rate limit window"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app. Merging precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GRIDLE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL:          appValues.String("base_url"),
		ResetTokenExpiry: appValues.Duration("reset_token_expiry", time.Hour),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		RateAuthMax:     appValues.Int("rate_auth_max"),
		RateAuthWindow:  appValues.Duration("rate_auth_window", 15*time.Minute),
		RateAPIMax:      appValues.Int("rate_api_max"),
		RateAPIWindow:   appValues.Duration("rate_api_window", 15*time.Minute),
		RateAdminMax:    appValues.Int("rate_admin_max"),
		RateAdminWindow: appValues.Duration("rate_admin_window", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.RateAuthMax <= 0 || appCfg.RateAPIMax <= 0 || appCfg.RateAdminMax <= 0 {
		return fmt.Errorf("rate limit ceilings must be positive")
	}

	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be set explicitly in production")
	}

	// OAuth is all-or-nothing; a lone client ID is a misconfiguration.
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	return nil
}
