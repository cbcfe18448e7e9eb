// Package assignmentstore owns the denormalized consultant↔project
// relation. Every edge is recorded on both parent documents: the
// consultant carries {project_id, percentage} and the project carries
// {consultant_id, percentage, hourly_rate}.
//
// Writes touch both documents. When the server supports multi-document
// transactions the two sides commit atomically; on standalone servers the
// store degrades to sequential dual writes, accepting the asymmetric-edge
// window that the reconcile worker later repairs.
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
	"github.com/alexsaussier/teamdesk/internal/app/system/txn"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

var (
	// ErrNotFound means the consultant or project does not exist in the
	// caller's organization.
	ErrNotFound = errors.New("consultant or project not found")

	// ErrEdgeNotFound means the assignment being updated does not exist.
	ErrEdgeNotFound = errors.New("assignment does not exist")

	// ErrConflict means the availability check rejected the candidate
	// assignment. Conflicts are terminal: the caller must pick a
	// different project, date range, or allocation.
	ErrConflict = errors.New("consultant is not available during the project dates")

	// ErrValidation means a percentage outside [0,100] or a negative
	// hourly rate.
	ErrValidation = errors.New("invalid assignment update")
)

// Patch carries the updatable edge fields. Nil fields are left untouched.
// Percentage applies to both sides of the relation; HourlyRate is stored
// on the project side only.
type Patch struct {
	Percentage *int
	HourlyRate *float64
}

type Store struct {
	client      *mongo.Client
	consultants *mongo.Collection
	projects    *mongo.Collection
	policy      availability.Policy
}

func New(db *mongo.Database, policy availability.Policy) *Store {
	return &Store{
		client:      db.Client(),
		consultants: db.Collection("consultants"),
		projects:    db.Collection("projects"),
		policy:      policy,
	}
}

// Assign creates the edge between a consultant and a project.
//
// The edge is created with the default percentage and no hourly rate;
// allocations are set through UpdateEdge. Re-assigning an existing pair
// is a no-op, not a duplicate. The availability check runs against the
// consultant's current commitments before anything is written.
func (s *Store) Assign(ctx context.Context, orgID, consultantID, projectID primitive.ObjectID) error {
	consultant, err := s.getConsultant(ctx, orgID, consultantID)
	if err != nil {
		return err
	}
	project, err := s.getProject(ctx, orgID, projectID)
	if err != nil {
		return err
	}

	if _, exists := consultant.AssignmentFor(projectID); exists {
		return nil
	}

	if start, end, ok := project.Dates(); ok {
		candidate := availability.Range{Start: start, End: end}
		commitments, err := s.commitments(ctx, orgID, consultant)
		if err != nil {
			return err
		}
		if !availability.Available(commitments, candidate, models.DefaultPercentage, s.policy) {
			return ErrConflict
		}
	}

	now := time.Now().UTC()
	consFilter := bson.M{
		"_id":                    consultantID,
		"organization_id":        orgID,
		"assignments.project_id": bson.M{"$ne": projectID},
	}
	consUpdate := bson.M{
		"$push": bson.M{"assignments": models.NewConsultantAssignment(projectID)},
		"$set":  bson.M{"updated_at": now},
	}
	projFilter := bson.M{
		"_id":                       projectID,
		"organization_id":           orgID,
		"assignments.consultant_id": bson.M{"$ne": consultantID},
	}
	projUpdate := bson.M{
		"$push": bson.M{"assignments": models.NewProjectAssignment(consultantID)},
		"$set":  bson.M{"updated_at": now},
	}

	// The $ne guards give push set semantics: a concurrent writer that
	// got there first simply matches nothing.
	return s.dualWrite(ctx, func(c context.Context) error {
		if _, err := s.consultants.UpdateOne(c, consFilter, consUpdate); err != nil {
			return err
		}
		_, err := s.projects.UpdateOne(c, projFilter, projUpdate)
		return err
	})
}

// UpdateEdge patches the percentage and/or hourly rate of an existing
// edge. Percentage is mirrored to both sides; hourly rate lives on the
// project side only.
func (s *Store) UpdateEdge(ctx context.Context, orgID, consultantID, projectID primitive.ObjectID, patch Patch) error {
	if patch.Percentage == nil && patch.HourlyRate == nil {
		return ErrValidation
	}
	if patch.Percentage != nil && (*patch.Percentage < 0 || *patch.Percentage > 100) {
		return ErrValidation
	}
	if patch.HourlyRate != nil && *patch.HourlyRate < 0 {
		return ErrValidation
	}

	now := time.Now().UTC()

	projSet := bson.M{"updated_at": now}
	if patch.Percentage != nil {
		projSet["assignments.$.percentage"] = *patch.Percentage
	}
	if patch.HourlyRate != nil {
		projSet["assignments.$.hourly_rate"] = *patch.HourlyRate
	}
	projFilter := bson.M{
		"_id":                       projectID,
		"organization_id":           orgID,
		"assignments.consultant_id": consultantID,
	}

	return s.dualWrite(ctx, func(c context.Context) error {
		if patch.Percentage != nil {
			consFilter := bson.M{
				"_id":                    consultantID,
				"organization_id":        orgID,
				"assignments.project_id": projectID,
			}
			consSet := bson.M{
				"assignments.$.percentage": *patch.Percentage,
				"updated_at":               now,
			}
			res, err := s.consultants.UpdateOne(c, consFilter, bson.M{"$set": consSet})
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return ErrEdgeNotFound
			}
		}

		res, err := s.projects.UpdateOne(c, projFilter, bson.M{"$set": projSet})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrEdgeNotFound
		}
		return nil
	})
}

// Unassign removes the edge from both sides. Removing an edge that does
// not exist is a no-op.
func (s *Store) Unassign(ctx context.Context, orgID, consultantID, projectID primitive.ObjectID) error {
	now := time.Now().UTC()
	return s.dualWrite(ctx, func(c context.Context) error {
		_, err := s.consultants.UpdateOne(c,
			bson.M{"_id": consultantID, "organization_id": orgID},
			bson.M{
				"$pull": bson.M{"assignments": bson.M{"project_id": projectID}},
				"$set":  bson.M{"updated_at": now},
			})
		if err != nil {
			return err
		}
		_, err = s.projects.UpdateOne(c,
			bson.M{"_id": projectID, "organization_id": orgID},
			bson.M{
				"$pull": bson.M{"assignments": bson.M{"consultant_id": consultantID}},
				"$set":  bson.M{"updated_at": now},
			})
		return err
	})
}

// CascadeDeleteConsultant removes every project-side edge referencing a
// consultant that is being deleted. Returns the number of projects
// touched.
func (s *Store) CascadeDeleteConsultant(ctx context.Context, orgID, consultantID primitive.ObjectID) (int64, error) {
	res, err := s.projects.UpdateMany(ctx,
		bson.M{"organization_id": orgID, "assignments.consultant_id": consultantID},
		bson.M{
			"$pull": bson.M{"assignments": bson.M{"consultant_id": consultantID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CascadeDeleteProject removes every consultant-side edge referencing a
// project that is being deleted. Returns the number of consultants
// touched.
func (s *Store) CascadeDeleteProject(ctx context.Context, orgID, projectID primitive.ObjectID) (int64, error) {
	res, err := s.consultants.UpdateMany(ctx,
		bson.M{"organization_id": orgID, "assignments.project_id": projectID},
		bson.M{
			"$pull": bson.M{"assignments": bson.M{"project_id": projectID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

/* ------------------------------ internals ------------------------------ */

func (s *Store) getConsultant(ctx context.Context, orgID, id primitive.ObjectID) (models.Consultant, error) {
	var c models.Consultant
	err := s.consultants.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Consultant{}, ErrNotFound
		}
		return models.Consultant{}, err
	}
	return c, nil
}

func (s *Store) getProject(ctx context.Context, orgID, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// commitments resolves the consultant's current edges to their projects'
// date ranges. Projects with missing or unparsable dates cannot overlap
// anything and are skipped.
func (s *Store) commitments(ctx context.Context, orgID primitive.ObjectID, consultant models.Consultant) ([]availability.Commitment, error) {
	if len(consultant.Assignments) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(consultant.Assignments))
	pct := make(map[primitive.ObjectID]int, len(consultant.Assignments))
	for _, a := range consultant.Assignments {
		ids = append(ids, a.ProjectID)
		pct[a.ProjectID] = a.Percentage
	}

	cur, err := s.projects.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}

	out := make([]availability.Commitment, 0, len(projects))
	for _, p := range projects {
		start, end, ok := p.Dates()
		if !ok {
			continue
		}
		out = append(out, availability.Commitment{
			Range:      availability.Range{Start: start, End: end},
			Percentage: pct[p.ID],
		})
	}
	return out, nil
}

// dualWrite runs fn transactionally when the server allows it and falls
// back to a plain sequential pass otherwise. In the fallback mode a crash
// between the two sides leaves an asymmetric edge for the reconcile
// worker.
func (s *Store) dualWrite(ctx context.Context, fn func(c context.Context) error) error {
	err := txn.Run(ctx, s.client, func(sc mongo.SessionContext) error {
		return fn(sc)
	})
	if err == nil || !txn.IsNotSupported(err) {
		return err
	}
	return fn(ctx)
}
