// Package ranking groups consultants by seniority level and summarizes
// their trailing-twelve-month utilization per level. It is a thin
// composition over the utilization calculator; it performs no I/O.
package ranking

import (
	"sort"
	"time"

	"github.com/alexsaussier/teamdesk/internal/app/system/utilization"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// ConsultantScore is one consultant's individual utilization within a level.
type ConsultantScore struct {
	Name        string `json:"name"`
	Utilization int    `json:"utilization"`
}

// LevelSummary reports one seniority level. Levels with no consultants
// still appear with a zero count and mean, so a thin bench is visible
// rather than silently missing.
type LevelSummary struct {
	Level              string            `json:"level"`
	ConsultantCount    int               `json:"consultant_count"`
	AverageUtilization float64           `json:"average_utilization"`
	Consultants        []ConsultantScore `json:"consultants"`
}

// RankByLevel summarizes utilization per seniority level.
//
// levels supplies the organization's ordered level list; every named level
// appears in the output in that order. Consultants tagged with a level
// outside the list are grouped under their own level, appended in
// first-seen order, so nobody drops out of the report.
//
// Within a level, consultants sort by utilization descending; ties keep
// their input order. Repeated calls on unchanged input produce identical
// output.
func RankByLevel(levels []string, consultants []models.Consultant, projects []models.Project, filter utilization.StatusFilter, ref time.Time) []LevelSummary {
	idx := utilization.ProjectIndex(projects)
	window := utilization.TrailingYear(ref)

	order := make([]string, 0, len(levels))
	byLevel := make(map[string][]ConsultantScore, len(levels))
	for _, lvl := range levels {
		order = append(order, lvl)
		byLevel[lvl] = nil
	}

	for _, c := range consultants {
		entries := utilization.EntriesFor(c, idx)
		points := utilization.Compute(entries, window, filter)
		score := ConsultantScore{Name: c.Name, Utilization: points[0].Value}

		if _, known := byLevel[c.Level]; !known {
			order = append(order, c.Level)
		}
		byLevel[c.Level] = append(byLevel[c.Level], score)
	}

	out := make([]LevelSummary, 0, len(order))
	for _, lvl := range order {
		scores := byLevel[lvl]
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Utilization > scores[j].Utilization
		})

		summary := LevelSummary{
			Level:           lvl,
			ConsultantCount: len(scores),
			Consultants:     scores,
		}
		if len(scores) > 0 {
			sum := 0
			for _, s := range scores {
				sum += s.Utilization
			}
			summary.AverageUtilization = float64(sum) / float64(len(scores))
		}
		out = append(out, summary)
	}
	return out
}
