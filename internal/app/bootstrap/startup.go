// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the database is connected and the schema is
// ensured, before the HTTP server starts listening.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.GoogleClientID == "" {
		logger.Info("Google sign-in disabled (no client ID configured)")
	}
	logger.Info("gridle starting",
		zap.String("env", coreCfg.Env),
		zap.String("base_url", appCfg.BaseURL))
	return nil
}
