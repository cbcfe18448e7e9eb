// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/go-chi/chi/v5"

	"github.com/alexsaussier/teamdesk/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleAssign)
		pr.Patch("/", h.HandleUpdate)
		pr.Delete("/", h.HandleUnassign)
	})

	return r
}
