// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, environment). AppConfig is everything specific to
// Gridle: the Mongo connection, session cookies, SMTP for reset email,
// Google OAuth, and the rate limit ceilings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret for signing session cookies
	SessionName   string // cookie name (default: gridle-session)
	SessionDomain string // cookie domain (blank means current host)

	// Email/SMTP configuration for password reset mail
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// BaseURL is the externally visible origin, used in reset links and
	// the Google OAuth redirect URL.
	BaseURL string

	// ResetTokenExpiry bounds how long a password reset link stays valid.
	ResetTokenExpiry time.Duration

	// Google OAuth configuration. Blank client ID disables the flow.
	GoogleClientID     string
	GoogleClientSecret string

	// Rate limit ceilings per fixed window, one tier each for the auth
	// endpoints, the general API, and the admin surface.
	RateAuthMax     int
	RateAuthWindow  time.Duration
	RateAPIMax      int
	RateAPIWindow   time.Duration
	RateAdminMax    int
	RateAdminWindow time.Duration
}
