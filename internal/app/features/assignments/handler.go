// Package assignments exposes the staffing API: putting consultants on
// projects, adjusting the engagement terms, and taking them off again.
package assignments

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	assignmentstore "github.com/alexsaussier/teamdesk/internal/app/store/assignments"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
)

// Handler is the shared dependency container for the assignments feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *assignmentstore.Store
}

// NewHandler constructs an assignments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, policy availability.Policy) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: assignmentstore.New(db, policy),
	}
}

// edgeRequest identifies an assignment edge plus the optional terms a
// PATCH may carry.
type edgeRequest struct {
	ConsultantID string   `json:"consultant_id"`
	ProjectID    string   `json:"project_id"`
	Percentage   *int     `json:"percentage"`
	HourlyRate   *float64 `json:"hourly_rate"`
}

// ids parses the edge endpoints, writing a 422 on malformed input.
func (req edgeRequest) ids(w http.ResponseWriter) (consultantID, projectID primitive.ObjectID, ok bool) {
	consultantID, err := primitive.ObjectIDFromHex(req.ConsultantID)
	if err != nil {
		shared.Error(w, http.StatusUnprocessableEntity, "consultant_id is not a valid id")
		return
	}
	projectID, err = primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		shared.Error(w, http.StatusUnprocessableEntity, "project_id is not a valid id")
		return
	}
	return consultantID, projectID, true
}

// HandleAssign handles POST /assignments. Assigning an already assigned
// pair is a no-op success.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	var req edgeRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	consultantID, projectID, ok := req.ids(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.Assign(ctx, orgID, consultantID, projectID)
	switch {
	case errors.Is(err, assignmentstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, assignmentstore.ErrConflict):
		shared.Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, assignmentstore.ErrValidation):
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.Log.Error("assignments: assign failed",
			zap.String("consultant_id", consultantID.Hex()),
			zap.String("project_id", projectID.Hex()),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create assignment")
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]string{"status": "assigned"})
}

// HandleUpdate handles PATCH /assignments: percentage and hourly rate of
// an existing edge. The percentage applies to both sides; the hourly rate
// is a term of the project engagement only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	var req edgeRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	consultantID, projectID, ok := req.ids(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.UpdateEdge(ctx, orgID, consultantID, projectID, assignmentstore.Patch{
		Percentage: req.Percentage,
		HourlyRate: req.HourlyRate,
	})
	switch {
	case errors.Is(err, assignmentstore.ErrEdgeNotFound), errors.Is(err, assignmentstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, assignmentstore.ErrValidation):
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.Log.Error("assignments: update failed",
			zap.String("consultant_id", consultantID.Hex()),
			zap.String("project_id", projectID.Hex()),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not update assignment")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleUnassign handles DELETE /assignments. Removing an edge that does
// not exist is a no-op success.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}
	var req edgeRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	consultantID, projectID, ok := req.ids(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Unassign(ctx, orgID, consultantID, projectID); err != nil {
		h.Log.Error("assignments: unassign failed",
			zap.String("consultant_id", consultantID.Hex()),
			zap.String("project_id", projectID.Hex()),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not remove assignment")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}
