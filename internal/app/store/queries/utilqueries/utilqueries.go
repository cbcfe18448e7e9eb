// Package utilqueries provides read-only queries backing the utilization
// and ranking reports.
package utilqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// ConsultantsWithProjects loads every consultant in the organization along
// with all projects their assignment edges reference. Projects the edges do
// not reference are left out; edges pointing at missing projects are kept
// and resolve to nothing downstream.
func ConsultantsWithProjects(
	ctx context.Context,
	db *mongo.Database,
	orgID primitive.ObjectID,
) ([]models.Consultant, []models.Project, error) {
	cur, err := db.Collection("consultants").Find(ctx,
		bson.M{"organization_id": orgID})
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	var consultants []models.Consultant
	if err := cur.All(ctx, &consultants); err != nil {
		return nil, nil, err
	}

	seen := make(map[primitive.ObjectID]struct{})
	var projectIDs []primitive.ObjectID
	for _, c := range consultants {
		for _, edge := range c.Assignments {
			if _, ok := seen[edge.ProjectID]; ok {
				continue
			}
			seen[edge.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, edge.ProjectID)
		}
	}

	projects, err := projectsByIDs(ctx, db, orgID, projectIDs)
	if err != nil {
		return nil, nil, err
	}
	return consultants, projects, nil
}

// ConsultantWithProjects loads a single consultant and the projects their
// edges reference. Returns mongo.ErrNoDocuments when the consultant does not
// exist in the organization.
func ConsultantWithProjects(
	ctx context.Context,
	db *mongo.Database,
	orgID, consultantID primitive.ObjectID,
) (models.Consultant, []models.Project, error) {
	var c models.Consultant
	err := db.Collection("consultants").FindOne(ctx,
		bson.M{"_id": consultantID, "organization_id": orgID}).Decode(&c)
	if err != nil {
		return models.Consultant{}, nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(c.Assignments))
	for _, edge := range c.Assignments {
		ids = append(ids, edge.ProjectID)
	}
	projects, err := projectsByIDs(ctx, db, orgID, ids)
	if err != nil {
		return models.Consultant{}, nil, err
	}
	return c, projects, nil
}

func projectsByIDs(
	ctx context.Context,
	db *mongo.Database,
	orgID primitive.ObjectID,
	ids []primitive.ObjectID,
) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := db.Collection("projects").Find(ctx, bson.M{
		"_id":             bson.M{"$in": ids},
		"organization_id": orgID,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
