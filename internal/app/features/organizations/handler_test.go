package organizations_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/features/organizations"
	"github.com/alexsaussier/teamdesk/internal/testutil"
)

func TestHandleUpdateLevels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := organizations.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme", "Junior", "Senior")
	admin := testutil.AdminUser(org.ID)

	req := testutil.NewJSONRequest("PUT", "/organizations/current/levels",
		`{"seniority_levels":["Analyst","Associate","Partner"]}`, admin)
	rec := testutil.NewRecorder()
	handler.HandleUpdateLevels(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// Planners cannot change the ladder.
	req = testutil.NewJSONRequest("PUT", "/organizations/current/levels",
		`{"seniority_levels":["Solo"]}`, testutil.PlannerUser(org.ID))
	rec = testutil.NewRecorder()
	handler.HandleUpdateLevels(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	// An empty ladder is rejected.
	req = testutil.NewJSONRequest("PUT", "/organizations/current/levels",
		`{"seniority_levels":[]}`, admin)
	rec = testutil.NewRecorder()
	handler.HandleUpdateLevels(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestServeCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := organizations.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme", "Junior")

	req := testutil.NewAuthenticatedRequest("GET", "/organizations/current", testutil.PlannerUser(org.ID))
	rec := testutil.NewRecorder()
	handler.ServeCurrent(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Acme")
}
