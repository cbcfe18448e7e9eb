// Package projects exposes the org-scoped project CRUD API.
package projects

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/alexsaussier/teamdesk/internal/app/store/assignments"
	projectstore "github.com/alexsaussier/teamdesk/internal/app/store/projects"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *projectstore.Store
	Edges *assignmentstore.Store
}

// NewHandler constructs a projects Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, policy availability.Policy) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: projectstore.New(db),
		Edges: assignmentstore.New(db, policy),
	}
}

// projectRequest is the JSON body for create and update.
type projectRequest struct {
	Name           string   `json:"name"`
	Client         string   `json:"client"`
	Status         string   `json:"status"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	RequiredSkills []string `json:"required_skills"`
}
