// Package organizations manages tenant records, in particular the
// seniority ladder the ranking report groups by.
package organizations

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	orgstore "github.com/alexsaussier/teamdesk/internal/app/store/organizations"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/htmlsanitize"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// Handler is the shared dependency container for the organizations
// feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *orgstore.Store
}

// NewHandler constructs an organizations Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: orgstore.New(db),
	}
}

// ServeCurrent handles GET /organizations/current: the caller's own
// tenant record.
func (h *Handler) ServeCurrent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Store.GetByID(ctx, orgID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		shared.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("organizations: get failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load organization")
		return
	}
	shared.JSON(w, http.StatusOK, org)
}

// HandleCreate handles POST /organizations. Admin only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		shared.Error(w, http.StatusUnauthorized, "admin role required")
		return
	}

	var req struct {
		Name            string   `json:"name"`
		SeniorityLevels []string `json:"seniority_levels"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}
	req.Name = htmlsanitize.Strip(req.Name)
	if req.Name == "" {
		shared.Error(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Store.Create(ctx, models.Organization{
		Name:            req.Name,
		SeniorityLevels: htmlsanitize.StripAll(req.SeniorityLevels),
	})
	if errors.Is(err, orgstore.ErrDuplicateName) {
		shared.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("organizations: create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create organization")
		return
	}
	shared.JSON(w, http.StatusCreated, org)
}

// HandleUpdateLevels handles PUT /organizations/current/levels. Admin
// only; replaces the seniority ladder wholesale.
func (h *Handler) HandleUpdateLevels(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	if !authz.IsAdmin(r) {
		shared.Error(w, http.StatusUnauthorized, "admin role required")
		return
	}

	var req struct {
		SeniorityLevels []string `json:"seniority_levels"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}
	levels := htmlsanitize.StripAll(req.SeniorityLevels)
	if len(levels) == 0 {
		shared.Error(w, http.StatusUnprocessableEntity, "at least one seniority level is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.UpdateSeniorityLevels(ctx, orgID, levels)
	if errors.Is(err, mongo.ErrNoDocuments) {
		shared.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("organizations: level update failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not update seniority levels")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
