// internal/app/system/utilization/entries.go
package utilization

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// ProjectIndex builds a lookup map from a project list, as loaded once per
// report and shared across consultants.
func ProjectIndex(projects []models.Project) map[primitive.ObjectID]models.Project {
	idx := make(map[primitive.ObjectID]models.Project, len(projects))
	for _, p := range projects {
		idx[p.ID] = p
	}
	return idx
}

// EntriesFor resolves a consultant's assignment edges against the project
// index. Edges referencing unknown projects are dropped; they are
// asymmetric leftovers the reconcile sweep will collect.
func EntriesFor(c models.Consultant, projects map[primitive.ObjectID]models.Project) []Entry {
	entries := make([]Entry, 0, len(c.Assignments))
	for _, a := range c.Assignments {
		p, ok := projects[a.ProjectID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ProjectStatus: p.Status,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			Percentage:    a.Percentage,
		})
	}
	return entries
}
