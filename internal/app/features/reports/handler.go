// Package reports serves the utilization and ranking read models. All
// output is raw numbers; presentation belongs to the caller.
package reports

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	orgstore "github.com/alexsaussier/teamdesk/internal/app/store/organizations"
)

// Handler is the shared dependency container for the reports feature.
type Handler struct {
	DB   *mongo.Database
	Log  *zap.Logger
	Orgs *orgstore.Store
}

// NewHandler constructs a reports Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:   db,
		Log:  logger,
		Orgs: orgstore.New(db),
	}
}
