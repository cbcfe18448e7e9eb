package workers_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/system/workers"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
	"github.com/alexsaussier/teamdesk/internal/testutil"
)

func TestSweep_MirrorsMissingProjectSide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	p := fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-03-31")

	// Simulate a write that only landed on the consultant side.
	_, err := db.Collection("consultants").UpdateByID(ctx, c.ID, bson.M{
		"$push": bson.M{"assignments": models.ConsultantAssignment{ProjectID: p.ID, Percentage: 80}},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w := workers.NewReconcile(db, zap.NewNop(), time.Hour)
	stats, err := w.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.MirroredToProject != 1 {
		t.Errorf("mirrored to project: got %d, want 1", stats.MirroredToProject)
	}

	got := fixtures.LoadProject(ctx, p.ID)
	edge, ok := got.AssignmentFor(c.ID)
	if !ok {
		t.Fatal("project side still missing after sweep")
	}
	if edge.Percentage != 80 {
		t.Errorf("mirrored percentage: got %d, want 80", edge.Percentage)
	}
}

func TestSweep_PrunesOrphanEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")

	// Edge pointing at a project that no longer exists.
	_, err := db.Collection("consultants").UpdateByID(ctx, c.ID, bson.M{
		"$push": bson.M{"assignments": models.ConsultantAssignment{
			ProjectID:  primitive.NewObjectID(),
			Percentage: 100,
		}},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w := workers.NewReconcile(db, zap.NewNop(), time.Hour)
	stats, err := w.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.PrunedFromConsult != 1 {
		t.Errorf("pruned from consultant: got %d, want 1", stats.PrunedFromConsult)
	}
	if got := fixtures.LoadConsultant(ctx, c.ID); len(got.Assignments) != 0 {
		t.Errorf("orphan edge survived the sweep: %+v", got.Assignments)
	}
}

func TestSweep_RealignsPercentage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	p := fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-03-31")

	_, err := db.Collection("consultants").UpdateByID(ctx, c.ID, bson.M{
		"$push": bson.M{"assignments": models.ConsultantAssignment{ProjectID: p.ID, Percentage: 60}},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	_, err = db.Collection("projects").UpdateByID(ctx, p.ID, bson.M{
		"$push": bson.M{"assignments": models.ProjectAssignment{ConsultantID: c.ID, Percentage: 40}},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w := workers.NewReconcile(db, zap.NewNop(), time.Hour)
	stats, err := w.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.Realigned != 1 {
		t.Errorf("realigned: got %d, want 1", stats.Realigned)
	}

	// The consultant side wins.
	got := fixtures.LoadProject(ctx, p.ID)
	edge, _ := got.AssignmentFor(c.ID)
	if edge.Percentage != 60 {
		t.Errorf("project percentage after sweep: got %d, want 60", edge.Percentage)
	}
}

func TestSweep_CleanStateIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-03-31")

	w := workers.NewReconcile(db, zap.NewNop(), time.Hour)
	stats, err := w.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if got := stats.MirroredToProject + stats.MirroredToConsult +
		stats.PrunedFromConsult + stats.PrunedFromProject + stats.Realigned; got != 0 {
		t.Errorf("clean database produced %d repairs", got)
	}
}
