package reports_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/reports"
	assignmentstore "github.com/alexsaussier/teamdesk/internal/app/store/assignments"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
	"github.com/alexsaussier/teamdesk/internal/app/system/ranking"
	"github.com/alexsaussier/teamdesk/internal/app/system/utilization"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
	"github.com/alexsaussier/teamdesk/internal/testutil"
)

func TestServeUtilization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := reports.NewHandler(db, zap.NewNop())
	edges := assignmentstore.New(db, availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme", "Junior", "Senior")
	user := testutil.PlannerUser(org.ID)
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	p := fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-01-31")
	if err := edges.Assign(ctx, org.ID, c.ID, p.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// One bucket covering exactly the project month: fully booked.
	req := testutil.NewAuthenticatedRequest("GET",
		"/reports/utilization?window=monthly&back=0&forward=0&ref=2025-01-15", user)
	rec := testutil.NewRecorder()
	handler.ServeUtilization(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Filter      string `json:"filter"`
		Consultants []struct {
			Name        string              `json:"name"`
			Utilization []utilization.Point `json:"utilization"`
		} `json:"consultants"`
		Average []utilization.Point `json:"average"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Filter != "official" {
		t.Errorf("default filter: got %q, want %q", resp.Filter, "official")
	}
	if len(resp.Consultants) != 1 || len(resp.Consultants[0].Utilization) != 1 {
		t.Fatalf("unexpected shape: %+v", resp)
	}
	got := resp.Consultants[0].Utilization[0]
	if got.Label != "2025-01" || got.Value != 100 {
		t.Errorf("point: got %s=%d, want 2025-01=100", got.Label, got.Value)
	}
	if resp.Average[0].Value != 100 {
		t.Errorf("average: got %d, want 100", resp.Average[0].Value)
	}
}

func TestServeUtilization_BadParams(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := reports.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := testutil.PlannerUser(org.ID)

	for _, target := range []string{
		"/reports/utilization?window=weekly",
		"/reports/utilization?filter=projected",
		"/reports/utilization?ref=January",
	} {
		req := testutil.NewAuthenticatedRequest("GET", target, user)
		rec := testutil.NewRecorder()
		handler.ServeUtilization(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusUnprocessableEntity)
	}
}

func TestServeRankings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := reports.NewHandler(db, zap.NewNop())
	edges := assignmentstore.New(db, availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme", "Junior", "Senior")
	user := testutil.PlannerUser(org.ID)
	ada := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	fixtures.CreateConsultant(ctx, "Joe", org.ID, "Junior")
	p := fixtures.CreateProject(ctx, "Yearlong", org.ID, models.StatusStarted, "2024-07-01", "2025-06-30")
	if err := edges.Assign(ctx, org.ID, ada.ID, p.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/reports/rankings?ref=2025-06-30", user)
	rec := testutil.NewRecorder()
	handler.ServeRankings(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Levels []ranking.LevelSummary `json:"levels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Levels) != 2 {
		t.Fatalf("levels: got %d, want 2", len(resp.Levels))
	}
	// Ladder order from the organization is preserved.
	if resp.Levels[0].Level != "Junior" || resp.Levels[1].Level != "Senior" {
		t.Errorf("level order: got %q,%q", resp.Levels[0].Level, resp.Levels[1].Level)
	}
	senior := resp.Levels[1]
	if senior.ConsultantCount != 1 || len(senior.Consultants) != 1 {
		t.Fatalf("senior summary: %+v", senior)
	}
	if senior.Consultants[0].Utilization != 100 {
		t.Errorf("Ada trailing-year utilization: got %d, want 100", senior.Consultants[0].Utilization)
	}
}
