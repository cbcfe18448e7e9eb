package consultants

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// ServeList handles GET /consultants. Supports ?q= (name prefix, folded)
// and ?skill= filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, orgID, r.URL.Query().Get("q"), r.URL.Query().Get("skill"))
	if err != nil {
		h.Log.Error("consultants: list failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not list consultants")
		return
	}
	if list == nil {
		list = []models.Consultant{}
	}
	shared.JSON(w, http.StatusOK, list)
}

// ServeView handles GET /consultants/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusNotFound, "consultant not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Store.GetByID(ctx, orgID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		shared.Error(w, http.StatusNotFound, "consultant not found")
		return
	}
	if err != nil {
		h.Log.Error("consultants: get failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load consultant")
		return
	}
	shared.JSON(w, http.StatusOK, c)
}
