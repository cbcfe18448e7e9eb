// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project lifecycle statuses, in pipeline order.
const (
	StatusDiscussions = "Discussions"
	StatusSold        = "Sold"
	StatusStarted     = "Started"
	StatusCompleted   = "Completed"
)

// ProjectStatuses lists all valid status values.
var ProjectStatuses = []string{StatusDiscussions, StatusSold, StatusStarted, StatusCompleted}

// ValidProjectStatus reports whether s is a known lifecycle status.
func ValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date format used for project start/end dates.
const DateLayout = "2006-01-02"

// Project represents a time-bounded client engagement.
//
// StartDate and EndDate are calendar dates stored as "YYYY-MM-DD" strings,
// matching what API callers send. Documents with missing or unparsable
// dates are tolerated: such projects simply never overlap anything and
// contribute nothing to utilization.
//
// Assignments is the project-side half of the denormalized relation; see
// the note on Consultant.Assignments.
type Project struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	Client         string   `bson:"client" json:"client"`
	RequiredSkills []string `bson:"required_skills" json:"required_skills"`

	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date" json:"end_date"`

	Status string `bson:"status" json:"status"`

	Assignments []ProjectAssignment `bson:"assignments" json:"assignments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Dates parses the project's calendar dates. ok is false when either date
// is missing or malformed.
func (p *Project) Dates() (start, end time.Time, ok bool) {
	var err error
	start, err = time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse(DateLayout, p.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// AssignmentFor returns the project-side edge for the given consultant,
// if present.
func (p *Project) AssignmentFor(consultantID primitive.ObjectID) (ProjectAssignment, bool) {
	for _, a := range p.Assignments {
		if a.ConsultantID == consultantID {
			return a, true
		}
	}
	return ProjectAssignment{}, false
}
