package consultantstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	consultantstore "github.com/alexsaussier/teamdesk/internal/app/store/consultants"
	"github.com/alexsaussier/teamdesk/internal/app/system/indexes"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
	"github.com/alexsaussier/teamdesk/internal/testutil"
)

func TestCreate_FoldsNameAndRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Duplicate detection needs the unique (organization_id, name_ci) index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	org := fixtures.CreateOrganization(ctx, "Acme")

	created, err := store.Create(ctx, models.Consultant{
		OrganizationID: org.ID,
		Name:           "Héloïse Martin",
		Level:          "Senior",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.NameCI != "heloise martin" {
		t.Errorf("folded name: got %q, want %q", created.NameCI, "heloise martin")
	}

	// Diacritic and case variants collide.
	_, err = store.Create(ctx, models.Consultant{
		OrganizationID: org.ID,
		Name:           "HELOISE MARTIN",
	})
	if !errors.Is(err, consultantstore.ErrDuplicateName) {
		t.Errorf("duplicate create: got %v, want ErrDuplicateName", err)
	}

	// Same name in a different organization is fine.
	other := fixtures.CreateOrganization(ctx, "Rival")
	if _, err := store.Create(ctx, models.Consultant{
		OrganizationID: other.ID,
		Name:           "Héloïse Martin",
	}); err != nil {
		t.Errorf("cross-org create failed: %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	fixtures.CreateConsultant(ctx, "Ada Lovelace", org.ID, "Senior", "Go", "Mongo")
	fixtures.CreateConsultant(ctx, "Alan Turing", org.ID, "Senior", "Math")
	fixtures.CreateConsultant(ctx, "Grace Hopper", org.ID, "Partner", "Go")

	tests := []struct {
		name  string
		query string
		skill string
		want  int
	}{
		{"no filter", "", "", 3},
		{"prefix", "a", "", 2},
		{"prefix case-insensitive", "ADA", "", 1},
		{"skill", "", "Go", 2},
		{"prefix and skill", "a", "Go", 1},
		{"no match", "z", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, org.ID, tt.query, tt.skill)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d consultants, want %d", len(got), tt.want)
			}
		})
	}
}

func TestUpdateInfo_LeavesAssignmentsAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")
	p := fixtures.CreateProject(ctx, "Rollout", org.ID, models.StatusStarted, "2025-01-01", "2025-03-31")

	edge := models.NewConsultantAssignment(p.ID)
	if _, err := db.Collection("consultants").UpdateByID(ctx, c.ID,
		map[string]any{"$push": map[string]any{"assignments": edge}}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	salary := 120.0
	if err := store.UpdateInfo(ctx, org.ID, c.ID, "Ada King", "Partner", []string{"Go"}, &salary, ""); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}

	got := fixtures.LoadConsultant(ctx, c.ID)
	if got.Name != "Ada King" || got.Level != "Partner" {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.Assignments) != 1 {
		t.Errorf("assignments changed by profile update: %+v", got.Assignments)
	}
}

func TestGetByID_MissingIsErrNoDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultantstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")
	other := fixtures.CreateOrganization(ctx, "Rival")
	c := fixtures.CreateConsultant(ctx, "Ada", org.ID, "Senior")

	// Wrong org scope behaves like a missing record.
	_, err := store.GetByID(ctx, other.ID, c.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-org get: got %v, want mongo.ErrNoDocuments", err)
	}
}
