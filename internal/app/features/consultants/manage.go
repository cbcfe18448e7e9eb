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
	consultantstore "github.com/alexsaussier/teamdesk/internal/app/store/consultants"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/htmlsanitize"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// HandleCreate handles POST /consultants.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	var req consultantRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	req.Name = htmlsanitize.Strip(req.Name)
	if req.Name == "" {
		shared.Error(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if req.HourlySalary != nil && *req.HourlySalary < 0 {
		shared.Error(w, http.StatusUnprocessableEntity, "hourly_salary must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Store.Create(ctx, models.Consultant{
		OrganizationID: orgID,
		Name:           req.Name,
		Level:          htmlsanitize.Strip(req.Level),
		Skills:         htmlsanitize.StripAll(req.Skills),
		HourlySalary:   req.HourlySalary,
		PortraitURL:    htmlsanitize.Strip(req.PortraitURL),
	})
	if errors.Is(err, consultantstore.ErrDuplicateName) {
		shared.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("consultants: create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create consultant")
		return
	}
	shared.JSON(w, http.StatusCreated, c)
}

// HandleUpdate handles PATCH /consultants/{id}. Assignment edges are not
// touched here; they belong to the assignments feature.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req consultantRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	req.Name = htmlsanitize.Strip(req.Name)
	if req.Name == "" {
		shared.Error(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if req.HourlySalary != nil && *req.HourlySalary < 0 {
		shared.Error(w, http.StatusUnprocessableEntity, "hourly_salary must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Store.UpdateInfo(ctx, orgID, id, req.Name,
		htmlsanitize.Strip(req.Level),
		htmlsanitize.StripAll(req.Skills),
		req.HourlySalary,
		htmlsanitize.Strip(req.PortraitURL))
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		shared.Error(w, http.StatusNotFound, "consultant not found")
		return
	case errors.Is(err, consultantstore.ErrDuplicateName):
		shared.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.Log.Error("consultants: update failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not update consultant")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /consultants/{id}. The consultant's
// assignment edges are removed from every project before the record goes.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Edges.CascadeDeleteConsultant(ctx, orgID, id); err != nil {
		h.Log.Error("consultants: cascade failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not delete consultant")
		return
	}

	deleted, err := h.Store.Delete(ctx, orgID, id)
	if err != nil {
		h.Log.Error("consultants: delete failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not delete consultant")
		return
	}
	if deleted == 0 {
		shared.Error(w, http.StatusNotFound, "consultant not found")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
