// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/sitedesk/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema reconciles the MongoDB indexes the service depends on:
// unique keys (user phone, org name, role per org, membership pair),
// the verification TTL index, and the list/search indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.SiteDeskMongoDatabase); err != nil {
		logger.Error("index reconciliation failed", zap.Error(err))
		return err
	}
	logger.Info("indexes reconciled")
	return nil
}
