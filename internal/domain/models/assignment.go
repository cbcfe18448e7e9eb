// internal/domain/models/assignment.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPercentage is the allocation applied when an assignment is
// created without an explicit percentage. Both sides of the relation use
// the same default so no reader can observe an undefined allocation.
const DefaultPercentage = 100

// ConsultantAssignment is the consultant-side record of the
// consultant↔project relation. It carries the allocation percentage only;
// the hourly rate is project-scoped and lives on the project side.
type ConsultantAssignment struct {
	ProjectID  primitive.ObjectID `bson:"project_id" json:"project_id"`
	Percentage int                `bson:"percentage" json:"percentage"`
}

// ProjectAssignment is the project-side record of the relation. HourlyRate
// is optional and overrides the consultant's base salary for this project.
type ProjectAssignment struct {
	ConsultantID primitive.ObjectID `bson:"consultant_id" json:"consultant_id"`
	Percentage   int                `bson:"percentage" json:"percentage"`
	HourlyRate   *float64           `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
}

// NewConsultantAssignment builds a consultant-side edge with
// DefaultPercentage. Percentage changes go through the update path.
func NewConsultantAssignment(projectID primitive.ObjectID) ConsultantAssignment {
	return ConsultantAssignment{
		ProjectID:  projectID,
		Percentage: DefaultPercentage,
	}
}

// NewProjectAssignment builds a project-side edge with DefaultPercentage
// and no hourly rate.
func NewProjectAssignment(consultantID primitive.ObjectID) ProjectAssignment {
	return ProjectAssignment{
		ConsultantID: consultantID,
		Percentage:   DefaultPercentage,
	}
}
