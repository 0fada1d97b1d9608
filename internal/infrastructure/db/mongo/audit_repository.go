package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// AuditRepository appends catalog write events to the audit_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionAudit)}
}

type mongoAuditEvent struct {
	Entity   string    `bson:"entity"`
	EntityID string    `bson:"entityId"`
	Action   string    `bson:"action"`
	ActorID  string    `bson:"actorId,omitempty"`
	At       time.Time `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEvent{
		Entity:   event.Entity,
		EntityID: event.EntityID,
		Action:   string(event.Action),
		ActorID:  event.ActorID,
		At:       event.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes indexes events by entity for history lookups.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entityId", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}
