// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/alexsaussier/teamdesk/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/utilization", h.ServeUtilization)
		pr.Get("/rankings", h.ServeRankings)
	})

	return r
}
