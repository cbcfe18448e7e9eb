package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	projectstore "github.com/alexsaussier/teamdesk/internal/app/store/projects"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/htmlsanitize"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// HandleCreate handles POST /projects. Status defaults to "Discussions"
// when the body leaves it empty.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	var req projectRequest
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

	p, err := h.Store.Create(ctx, models.Project{
		OrganizationID: orgID,
		Name:           req.Name,
		Client:         htmlsanitize.Strip(req.Client),
		Status:         req.Status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RequiredSkills: htmlsanitize.StripAll(req.RequiredSkills),
	})
	switch {
	case errors.Is(err, projectstore.ErrBadStatus), errors.Is(err, projectstore.ErrBadDates):
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, projectstore.ErrDuplicateName):
		shared.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.Log.Error("projects: create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create project")
		return
	}
	shared.JSON(w, http.StatusCreated, p)
}

// HandleUpdate handles PATCH /projects/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusNotFound, "project not found")
		return
	}

	var req projectRequest
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

	err = h.Store.UpdateInfo(ctx, orgID, id, req.Name,
		htmlsanitize.Strip(req.Client),
		req.Status, req.StartDate, req.EndDate,
		htmlsanitize.StripAll(req.RequiredSkills))
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		shared.Error(w, http.StatusNotFound, "project not found")
		return
	case errors.Is(err, projectstore.ErrBadStatus), errors.Is(err, projectstore.ErrBadDates):
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, projectstore.ErrDuplicateName):
		shared.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.Log.Error("projects: update failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not update project")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /projects/{id}. The project's assignment
// edges are pulled from every consultant before the record goes.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusNotFound, "project not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Edges.CascadeDeleteProject(ctx, orgID, id); err != nil {
		h.Log.Error("projects: cascade failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not delete project")
		return
	}

	deleted, err := h.Store.Delete(ctx, orgID, id)
	if err != nil {
		h.Log.Error("projects: delete failed", zap.String("id", id.Hex()), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not delete project")
		return
	}
	if deleted == 0 {
		shared.Error(w, http.StatusNotFound, "project not found")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
