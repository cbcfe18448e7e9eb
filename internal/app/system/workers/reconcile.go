// internal/app/system/workers/reconcile.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alexsaussier/teamdesk/internal/app/system/timeouts"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

// Reconcile is a background worker that repairs asymmetric assignment
// edges. Assignments are written to both the consultant and the project
// document; when a deployment without transaction support fails between
// the two writes, one side can be left dangling. The sweep re-mirrors
// edges whose other side is missing and prunes edges that reference a
// deleted consultant or project. The consultant side is treated as
// authoritative for the percentage.
type Reconcile struct {
	db       *mongo.Database
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// ReconcileStats summarizes one sweep.
type ReconcileStats struct {
	ConsultantsScanned int
	ProjectsScanned    int
	MirroredToProject  int
	MirroredToConsult  int
	PrunedFromConsult  int
	PrunedFromProject  int
	Realigned          int
}

func (s ReconcileStats) repairs() int {
	return s.MirroredToProject + s.MirroredToConsult +
		s.PrunedFromConsult + s.PrunedFromProject + s.Realigned
}

// NewReconcile creates the edge reconciliation worker.
func NewReconcile(db *mongo.Database, logger *zap.Logger, interval time.Duration) *Reconcile {
	return &Reconcile{
		db:       db,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *Reconcile) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("edge reconcile worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Reconcile) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("edge reconcile worker stopped")
}

func (w *Reconcile) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			runID := uuid.NewString()
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
			stats, err := w.Sweep(ctx)
			cancel()
			if err != nil {
				w.log.Error("edge sweep failed", zap.String("run_id", runID), zap.Error(err))
				continue
			}
			if stats.repairs() > 0 {
				w.log.Info("edge sweep repaired assignments",
					zap.String("run_id", runID),
					zap.Int("consultants_scanned", stats.ConsultantsScanned),
					zap.Int("projects_scanned", stats.ProjectsScanned),
					zap.Int("mirrored_to_project", stats.MirroredToProject),
					zap.Int("mirrored_to_consultant", stats.MirroredToConsult),
					zap.Int("pruned_from_consultant", stats.PrunedFromConsult),
					zap.Int("pruned_from_project", stats.PrunedFromProject),
					zap.Int("realigned", stats.Realigned))
			}
		}
	}
}

// Sweep runs one full reconciliation pass over both collections.
func (w *Reconcile) Sweep(ctx context.Context) (ReconcileStats, error) {
	var stats ReconcileStats

	consultants, err := loadAll[models.Consultant](ctx, w.db.Collection("consultants"))
	if err != nil {
		return stats, err
	}
	projects, err := loadAll[models.Project](ctx, w.db.Collection("projects"))
	if err != nil {
		return stats, err
	}
	stats.ConsultantsScanned = len(consultants)
	stats.ProjectsScanned = len(projects)

	consultantByID := make(map[primitive.ObjectID]models.Consultant, len(consultants))
	for _, c := range consultants {
		consultantByID[c.ID] = c
	}
	projectByID := make(map[primitive.ObjectID]models.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}

	// Walk consultant-side edges against the project documents.
	for _, c := range consultants {
		for _, edge := range c.Assignments {
			p, exists := projectByID[edge.ProjectID]
			if !exists {
				if err := w.pullConsultantEdge(ctx, c.ID, edge.ProjectID); err != nil {
					return stats, err
				}
				stats.PrunedFromConsult++
				continue
			}
			mirror, ok := p.AssignmentFor(c.ID)
			if !ok {
				if err := w.pushProjectEdge(ctx, p.ID, c.ID, edge.Percentage); err != nil {
					return stats, err
				}
				stats.MirroredToProject++
				continue
			}
			if mirror.Percentage != edge.Percentage {
				if err := w.setProjectEdgePercentage(ctx, p.ID, c.ID, edge.Percentage); err != nil {
					return stats, err
				}
				stats.Realigned++
			}
		}
	}

	// Walk project-side edges the other way.
	for _, p := range projects {
		for _, edge := range p.Assignments {
			c, exists := consultantByID[edge.ConsultantID]
			if !exists {
				if err := w.pullProjectEdge(ctx, p.ID, edge.ConsultantID); err != nil {
					return stats, err
				}
				stats.PrunedFromProject++
				continue
			}
			if _, ok := c.AssignmentFor(p.ID); !ok {
				if err := w.pushConsultantEdge(ctx, c.ID, p.ID, edge.Percentage); err != nil {
					return stats, err
				}
				stats.MirroredToConsult++
			}
		}
	}

	return stats, nil
}

func loadAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Reconcile) pullConsultantEdge(ctx context.Context, consultantID, projectID primitive.ObjectID) error {
	_, err := w.db.Collection("consultants").UpdateByID(ctx, consultantID, bson.M{
		"$pull": bson.M{"assignments": bson.M{"project_id": projectID}},
	})
	return err
}

func (w *Reconcile) pullProjectEdge(ctx context.Context, projectID, consultantID primitive.ObjectID) error {
	_, err := w.db.Collection("projects").UpdateByID(ctx, projectID, bson.M{
		"$pull": bson.M{"assignments": bson.M{"consultant_id": consultantID}},
	})
	return err
}

func (w *Reconcile) pushConsultantEdge(ctx context.Context, consultantID, projectID primitive.ObjectID, percentage int) error {
	edge := models.ConsultantAssignment{ProjectID: projectID, Percentage: percentage}
	_, err := w.db.Collection("consultants").UpdateOne(ctx,
		bson.M{"_id": consultantID, "assignments.project_id": bson.M{"$ne": projectID}},
		bson.M{"$push": bson.M{"assignments": edge}})
	return err
}

func (w *Reconcile) pushProjectEdge(ctx context.Context, projectID, consultantID primitive.ObjectID, percentage int) error {
	edge := models.ProjectAssignment{ConsultantID: consultantID, Percentage: percentage}
	_, err := w.db.Collection("projects").UpdateOne(ctx,
		bson.M{"_id": projectID, "assignments.consultant_id": bson.M{"$ne": consultantID}},
		bson.M{"$push": bson.M{"assignments": edge}})
	return err
}

func (w *Reconcile) setProjectEdgePercentage(ctx context.Context, projectID, consultantID primitive.ObjectID, percentage int) error {
	_, err := w.db.Collection("projects").UpdateOne(ctx,
		bson.M{"_id": projectID, "assignments.consultant_id": consultantID},
		bson.M{"$set": bson.M{"assignments.$.percentage": percentage}})
	return err
}
