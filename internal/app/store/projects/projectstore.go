// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateName = errors.New("a project with this name already exists in the organization")
	ErrBadStatus     = errors.New("unknown project status")
	ErrBadDates      = errors.New("project start date must not be after end date")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) GetByID(ctx context.Context, orgID, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&p)
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.Status == "" {
		p.Status = models.StatusDiscussions
	}
	if !models.ValidProjectStatus(p.Status) {
		return models.Project{}, ErrBadStatus
	}
	if err := validateDates(p.StartDate, p.EndDate); err != nil {
		return models.Project{}, err
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}
	if p.Assignments == nil {
		p.Assignments = []models.ProjectAssignment{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateName
		}
		return models.Project{}, err
	}
	return p, nil
}

// UpdateInfo patches project fields. Passing empty strings leaves the
// corresponding field unchanged; dates must be patched as a pair so the
// start<=end invariant can be checked.
func (s *Store) UpdateInfo(ctx context.Context, orgID, id primitive.ObjectID, name, client, status, startDate, endDate string, requiredSkills []string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if client != "" {
		set["client"] = client
	}
	if status != "" {
		if !models.ValidProjectStatus(status) {
			return ErrBadStatus
		}
		set["status"] = status
	}
	if startDate != "" || endDate != "" {
		if err := validateDates(startDate, endDate); err != nil {
			return err
		}
		set["start_date"] = startDate
		set["end_date"] = endDate
	}
	if requiredSkills != nil {
		set["required_skills"] = requiredSkills
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a project. Callers must cascade assignment edges first.
func (s *Store) Delete(ctx context.Context, orgID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns the organization's projects, optionally filtered by
// lifecycle status, sorted by start date then folded name.
func (s *Store) List(ctx context.Context, orgID primitive.ObjectID, status string) ([]models.Project, error) {
	filter := bson.M{"organization_id": orgID}
	if status != "" {
		if !models.ValidProjectStatus(status) {
			return nil, ErrBadStatus
		}
		filter["status"] = status
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "name_ci", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs fetches a set of projects in one round trip.
func (s *Store) ListByIDs(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// validateDates accepts the pair when both parse and start <= end.
// Projects in early discussion may legitimately have no dates yet, so a
// fully empty pair is allowed.
func validateDates(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	s, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return ErrBadDates
	}
	e, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return ErrBadDates
	}
	if s.After(e) {
		return ErrBadDates
	}
	return nil
}
