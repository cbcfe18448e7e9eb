package reports

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	"github.com/alexsaussier/teamdesk/internal/app/store/queries/utilqueries"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/app/system/utilization"
)

// consultantSeries is one consultant's utilization over the window.
type consultantSeries struct {
	ConsultantID string              `json:"consultant_id"`
	Name         string              `json:"name"`
	Utilization  []utilization.Point `json:"utilization"`
}

// utilizationResponse is the payload for GET /reports/utilization.
type utilizationResponse struct {
	Filter      string              `json:"filter"`
	Consultants []consultantSeries  `json:"consultants"`
	Average     []utilization.Point `json:"average"`
}

// ServeUtilization handles GET /reports/utilization. Window and filter
// are controlled by query parameters; ?consultant_id= narrows the report
// to one consultant.
func (h *Handler) ServeUtilization(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	q := r.URL.Query()
	buckets, err := parseWindow(q)
	if err != nil {
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	filter, err := utilization.ParseStatusFilter(q.Get("filter"))
	if err != nil {
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	resp := utilizationResponse{
		Filter:      string(filter),
		Consultants: []consultantSeries{},
	}

	if hex := q.Get("consultant_id"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			shared.Error(w, http.StatusNotFound, "consultant not found")
			return
		}
		c, projects, err := utilqueries.ConsultantWithProjects(ctx, h.DB, orgID, id)
		if errors.Is(err, mongo.ErrNoDocuments) {
			shared.Error(w, http.StatusNotFound, "consultant not found")
			return
		}
		if err != nil {
			h.Log.Error("reports: consultant load failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not build report")
			return
		}
		index := utilization.ProjectIndex(projects)
		series := utilization.Compute(utilization.EntriesFor(c, index), buckets, filter)
		resp.Consultants = append(resp.Consultants, consultantSeries{
			ConsultantID: c.ID.Hex(),
			Name:         c.Name,
			Utilization:  series,
		})
		resp.Average = series
		shared.JSON(w, http.StatusOK, resp)
		return
	}

	consultants, projects, err := utilqueries.ConsultantsWithProjects(ctx, h.DB, orgID)
	if err != nil {
		h.Log.Error("reports: consultants load failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not build report")
		return
	}

	index := utilization.ProjectIndex(projects)
	all := make([][]utilization.Point, 0, len(consultants))
	for _, c := range consultants {
		series := utilization.Compute(utilization.EntriesFor(c, index), buckets, filter)
		all = append(all, series)
		resp.Consultants = append(resp.Consultants, consultantSeries{
			ConsultantID: c.ID.Hex(),
			Name:         c.Name,
			Utilization:  series,
		})
	}
	resp.Average = utilization.Mean(all...)
	shared.JSON(w, http.StatusOK, resp)
}
