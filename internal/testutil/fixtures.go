package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name and
// seniority ladder.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string, levels ...string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		SeniorityLevels: levels,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateConsultant creates a test consultant in the given organization.
func (f *Fixtures) CreateConsultant(ctx context.Context, name string, orgID primitive.ObjectID, level string, skills ...string) models.Consultant {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Consultant{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		Skills:         skills,
		Level:          level,
		Assignments:    []models.ConsultantAssignment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("consultants").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test consultant: %v", err)
	}
	return c
}

// CreateProject creates a test project with the given status and
// calendar-date range.
func (f *Fixtures) CreateProject(ctx context.Context, name string, orgID primitive.ObjectID, status, startDate, endDate string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		Client:         "Test Client",
		RequiredSkills: []string{},
		StartDate:      startDate,
		EndDate:        endDate,
		Status:         status,
		Assignments:    []models.ProjectAssignment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// LoadConsultant re-reads a consultant document.
func (f *Fixtures) LoadConsultant(ctx context.Context, id primitive.ObjectID) models.Consultant {
	f.t.Helper()

	var c models.Consultant
	if err := f.db.Collection("consultants").FindOne(ctx, map[string]any{"_id": id}).Decode(&c); err != nil {
		f.t.Fatalf("failed to load consultant: %v", err)
	}
	return c
}

// LoadProject re-reads a project document.
func (f *Fixtures) LoadProject(ctx context.Context, id primitive.ObjectID) models.Project {
	f.t.Helper()

	var p models.Project
	if err := f.db.Collection("projects").FindOne(ctx, map[string]any{"_id": id}).Decode(&p); err != nil {
		f.t.Fatalf("failed to load project: %v", err)
	}
	return p
}
