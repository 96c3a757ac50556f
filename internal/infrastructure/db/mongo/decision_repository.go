package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

const decisionsCollection = "adoption_decisions"

// DecisionRepository records adoption decisions as an audit trail.
type DecisionRepository struct {
	db *mongo.Database
}

func NewDecisionRepository(db *mongo.Database) *DecisionRepository {
	return &DecisionRepository{db: db}
}

var _ ports.DecisionSubmitter = (*DecisionRepository)(nil)

// EnsureIndexes creates the lookup index on request id.
func (r *DecisionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(decisionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "request_id", Value: 1}, {Key: "decided_at", Value: -1}},
		Options: options.Index().SetName("request_id_decided_at"),
	})
	if err != nil {
		return fmt.Errorf("ensure %s indexes: %w", decisionsCollection, err)
	}
	return nil
}

// SubmitDecision inserts one audit document per decision.
func (r *DecisionRepository) SubmitDecision(ctx context.Context, d domain.AdoptionDecision) error {
	decidedAt := d.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now()
	}
	doc := bson.M{
		"request_id":  d.RequestID,
		"status":      string(d.Status),
		"decided_by":  d.DecidedBy,
		"decided_at":  decidedAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if _, err := r.db.Collection(decisionsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert adoption decision %s: %w", d.RequestID, err)
	}
	return nil
}
