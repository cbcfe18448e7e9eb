// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is the tenant boundary. Every consultant and project
// belongs to exactly one organization, and every query is scoped by it.
//
// SeniorityLevels is the organization-defined, ordered ladder that
// consultant Level values reference (e.g. "Junior", "Senior", "Principal").
// The rankings report groups consultants by these levels in this order.
type Organization struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	SeniorityLevels []string `bson:"seniority_levels" json:"seniority_levels"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
