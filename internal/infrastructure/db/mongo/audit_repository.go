package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blendpos/pos-backend/internal/core/domain"
)

const auditCollection = "auth_audit"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Action  string `bson:"action"`
	Email   string `bson:"email"`
	UserID  int64  `bson:"user_id,omitempty"`
	Success bool   `bson:"success"`
	Detail  string `bson:"detail,omitempty"`
	At      int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		Action:  entry.Action,
		Email:   entry.Email,
		UserID:  entry.UserID,
		Success: entry.Success,
		Detail:  entry.Detail,
		At:      entry.At.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
