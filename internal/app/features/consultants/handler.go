// Package consultants exposes the org-scoped consultant CRUD API.
package consultants

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/alexsaussier/teamdesk/internal/app/store/assignments"
	consultantstore "github.com/alexsaussier/teamdesk/internal/app/store/consultants"
	"github.com/alexsaussier/teamdesk/internal/app/system/availability"
)

// Handler is the shared dependency container for the consultants feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *consultantstore.Store
	Edges *assignmentstore.Store
}

// NewHandler constructs a consultants Handler. It is called from the
// bootstrap BuildHandler function once the DB and logger exist.
func NewHandler(db *mongo.Database, logger *zap.Logger, policy availability.Policy) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: consultantstore.New(db),
		Edges: assignmentstore.New(db, policy),
	}
}

// consultantRequest is the JSON body for create and update.
type consultantRequest struct {
	Name         string   `json:"name"`
	Level        string   `json:"level"`
	Skills       []string `json:"skills"`
	HourlySalary *float64 `json:"hourly_salary"`
	PortraitURL  string   `json:"portrait_url"`
}
