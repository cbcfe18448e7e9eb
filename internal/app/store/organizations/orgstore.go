// internal/app/store/organizations/orgstore.go
package orgstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateName = errors.New("an organization with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	if org.Status == "" {
		org.Status = "active"
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateName
		}
		return models.Organization{}, err
	}
	return org, nil
}

// UpdateSeniorityLevels replaces the organization's ordered level ladder.
// The order is meaningful: the rankings report follows it.
func (s *Store) UpdateSeniorityLevels(ctx context.Context, id primitive.ObjectID, levels []string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"seniority_levels": levels,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
