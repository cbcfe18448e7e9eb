// internal/app/store/consultants/consultantstore.go
package consultantstore

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

// Store wraps the consultants collection. Every operation is scoped by
// organization id; there is no unscoped read path.
type Store struct {
	c *mongo.Collection
}

var ErrDuplicateName = errors.New("a consultant with this name already exists in the organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("consultants")}
}

func (s *Store) GetByID(ctx context.Context, orgID, id primitive.ObjectID) (models.Consultant, error) {
	var c models.Consultant
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&c)
	if err != nil {
		return models.Consultant{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Consultant) (models.Consultant, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Assignments == nil {
		c.Assignments = []models.ConsultantAssignment{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Consultant{}, ErrDuplicateName
		}
		return models.Consultant{}, err
	}
	return c, nil
}

// UpdateInfo patches profile fields. Assignments are owned by the
// assignment store and never written here.
func (s *Store) UpdateInfo(ctx context.Context, orgID, id primitive.ObjectID, name, level string, skills []string, hourlySalary *float64, portraitURL string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if level != "" {
		set["level"] = level
	}
	if skills != nil {
		set["skills"] = skills
	}
	if hourlySalary != nil {
		set["hourly_salary"] = *hourlySalary
	}
	if portraitURL != "" {
		set["portrait_url"] = portraitURL
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

// Delete removes a consultant. Returns the number of documents deleted
// (0 or 1). Callers must cascade assignment edges first.
func (s *Store) Delete(ctx context.Context, orgID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns the organization's consultants, optionally filtered by a
// folded name prefix and a required skill, sorted by folded name.
func (s *Store) List(ctx context.Context, orgID primitive.ObjectID, nameQuery, skill string) ([]models.Consultant, error) {
	filter := bson.M{"organization_id": orgID}
	if nameQuery != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + text.Fold(nameQuery)}
	}
	if skill != "" {
		filter["skills"] = skill
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Consultant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs fetches a set of consultants in one round trip.
func (s *Store) ListByIDs(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Consultant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Consultant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
