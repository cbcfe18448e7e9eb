// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/system/workers"
)

// reconciler is started here and stopped in Shutdown.
var reconciler *workers.Reconcile

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.ReconcileEnabled {
		reconciler = workers.NewReconcile(deps.TeamDeskMongoDatabase, logger, appCfg.ReconcileInterval)
		reconciler.Start()
	}
	return nil
}
