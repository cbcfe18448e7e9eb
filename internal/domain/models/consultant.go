// internal/domain/models/consultant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consultant represents a workforce member who can be assigned to projects.
//
// Assignments is the consultant-side half of the denormalized
// consultant↔project relation. Every entry here must have a mirror in the
// referenced project's Assignments list; the assignment store maintains
// both sides and the reconcile worker repairs any drift.
type Consultant struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	Skills []string `bson:"skills" json:"skills"`

	// Level references an entry in the organization's SeniorityLevels list.
	Level string `bson:"level" json:"level"`

	// HourlySalary is the consultant's base rate; a project-side
	// assignment may override it with its own hourly rate.
	HourlySalary *float64 `bson:"hourly_salary,omitempty" json:"hourly_salary,omitempty"`

	// PortraitURL points at externally stored profile imagery.
	PortraitURL string `bson:"portrait_url,omitempty" json:"portrait_url,omitempty"`

	Assignments []ConsultantAssignment `bson:"assignments" json:"assignments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AssignmentFor returns the consultant-side edge for the given project,
// if present.
func (c *Consultant) AssignmentFor(projectID primitive.ObjectID) (ConsultantAssignment, bool) {
	for _, a := range c.Assignments {
		if a.ProjectID == projectID {
			return a, true
		}
	}
	return ConsultantAssignment{}, false
}
