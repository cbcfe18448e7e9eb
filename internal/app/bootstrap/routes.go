// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	assignmentsfeature "github.com/alexsaussier/teamdesk/internal/app/features/assignments"
	consultantsfeature "github.com/alexsaussier/teamdesk/internal/app/features/consultants"
	healthfeature "github.com/alexsaussier/teamdesk/internal/app/features/health"
	organizationsfeature "github.com/alexsaussier/teamdesk/internal/app/features/organizations"
	projectsfeature "github.com/alexsaussier/teamdesk/internal/app/features/projects"
	reportsfeature "github.com/alexsaussier/teamdesk/internal/app/features/reports"
	"github.com/alexsaussier/teamdesk/internal/app/system/auth"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It initializes the session store,
// applies the session middleware, and mounts the feature routers: health,
// organizations, consultants, projects, assignments, and reports.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Validated earlier in ValidateConfig.
	policy, err := availability.ParsePolicy(appCfg.AvailabilityPolicy)
	if err != nil {
		return nil, err
	}

	db := deps.TeamDeskMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TeamDeskMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	orgHandler := organizationsfeature.NewHandler(db, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgHandler))

	consultantHandler := consultantsfeature.NewHandler(db, logger, policy)
	r.Mount("/consultants", consultantsfeature.Routes(consultantHandler))

	projectHandler := projectsfeature.NewHandler(db, logger, policy)
	r.Mount("/projects", projectsfeature.Routes(projectHandler))

	assignmentHandler := assignmentsfeature.NewHandler(db, logger, policy)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentHandler))

	reportHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportHandler))

	return r, nil
}
