package consultants_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/consultants"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
	"github.com/alexsaussier/teamdesk/internal/app/system/indexes"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
	"github.com/alexsaussier/teamdesk/internal/testutil"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := consultants.NewHandler(db, zap.NewNop(), availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The duplicate check below needs the unique name index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	org := fixtures.CreateOrganization(ctx, "Acme", "Junior", "Senior")
	user := testutil.PlannerUser(org.ID)

	req := testutil.NewJSONRequest("POST", "/consultants",
		`{"name":"Ada Lovelace","level":"Senior","skills":["Go","Mongo"]}`, user)
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var created models.Consultant
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if created.Name != "Ada Lovelace" {
		t.Errorf("name: got %q, want %q", created.Name, "Ada Lovelace")
	}
	if created.OrganizationID != org.ID {
		t.Errorf("organization: got %s, want %s", created.OrganizationID.Hex(), org.ID.Hex())
	}

	// Same folded name in the same org conflicts.
	req = testutil.NewJSONRequest("POST", "/consultants",
		`{"name":"ada lovelace","level":"Senior"}`, user)
	rec = testutil.NewRecorder()
	handler.HandleCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := consultants.NewHandler(db, zap.NewNop(), availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	user := testutil.PlannerUser(org.ID)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"level":"Senior"}`, http.StatusUnprocessableEntity},
		{"markup-only name", `{"name":"<script>x</script>"}`, http.StatusUnprocessableEntity},
		{"negative salary", `{"name":"Ada","hourly_salary":-1}`, http.StatusUnprocessableEntity},
		{"malformed body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest("POST", "/consultants", tt.body, user)
			rec := testutil.NewRecorder()
			handler.HandleCreate(rec.ResponseRecorder, req)
			rec.AssertStatus(t, tt.want)
		})
	}
}

func TestServeView_OrgScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := consultants.NewHandler(db, zap.NewNop(), availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	other := fixtures.CreateOrganization(ctx, "Rival")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")

	req := testutil.NewAuthenticatedRequest("GET", "/consultants/"+c.ID.Hex(), testutil.PlannerUser(org.ID))
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())
	rec := testutil.NewRecorder()
	handler.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ada")

	// A caller from another organization cannot see the record.
	req = testutil.NewAuthenticatedRequest("GET", "/consultants/"+c.ID.Hex(), testutil.PlannerUser(other.ID))
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())
	rec = testutil.NewRecorder()
	handler.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete_CascadesEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := consultants.NewHandler(db, zap.NewNop(), availability.PolicyBlockOverlap)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	p := fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-03-31")

	if err := handler.Edges.Assign(ctx, org.ID, c.ID, p.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("DELETE", "/consultants/"+c.ID.Hex(), testutil.PlannerUser(org.ID))
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	if got := fixtures.LoadProject(ctx, p.ID); len(got.Assignments) != 0 {
		t.Errorf("project still has %d edges after consultant delete", len(got.Assignments))
	}
}
