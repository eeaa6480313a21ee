package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

const auditCollection = "audit_events"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID      string `bson:"_id"`
	Action  string `bson:"action"`
	ActorID int64  `bson:"actor_id,omitempty"`
	Subject string `bson:"subject"`
	IP      string `bson:"ip,omitempty"`
	At      int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		ID:      event.ID,
		Action:  event.Action,
		ActorID: event.ActorID,
		Subject: event.Subject,
		IP:      event.IP,
		At:      event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
