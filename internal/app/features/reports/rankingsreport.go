package reports

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/shared"
	"github.com/alexsaussier/teamdesk/internal/app/store/queries/utilqueries"
	"github.com/alexsaussier/teamdesk/internal/app/system/authz"
	"github.com/alexsaussier/teamdesk/internal/app/system/ranking"
	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/app/system/utilization"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// rankingsResponse is the payload for GET /reports/rankings.
type rankingsResponse struct {
	Filter string                 `json:"filter"`
	Levels []ranking.LevelSummary `json:"levels"`
}

// ServeRankings handles GET /reports/rankings: consultants grouped by the
// organization's seniority ladder, ordered by trailing-year utilization.
func (h *Handler) ServeRankings(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.OrgScope(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "no organization in session")
		return
	}

	q := r.URL.Query()
	filter, err := utilization.ParseStatusFilter(q.Get("filter"))
	if err != nil {
		shared.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	ref := time.Now().UTC()
	if s := q.Get("ref"); s != "" {
		parsed, err := time.Parse(models.DateLayout, s)
		if err != nil {
			shared.Error(w, http.StatusUnprocessableEntity, "ref must be YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, orgID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		shared.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("reports: organization load failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not build report")
		return
	}

	consultants, projects, err := utilqueries.ConsultantsWithProjects(ctx, h.DB, orgID)
	if err != nil {
		h.Log.Error("reports: consultants load failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not build report")
		return
	}

	levels := ranking.RankByLevel(org.SeniorityLevels, consultants, projects, filter, ref)
	shared.JSON(w, http.StatusOK, rankingsResponse{
		Filter: string(filter),
		Levels: levels,
	})
}
