package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/persistence/db"
)

type auditLogRepository struct {
	db *mongo.Database
}

func NewAuditLogRepository(db *mongo.Database) domain.AuditRepository {
	return &auditLogRepository{
		db: db,
	}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) (string, error) {
	collection := r.db.Collection(db.AuditLogsCollection)

	if _, err := collection.InsertOne(ctx, entry); err != nil {
		return "", err
	}

	return entry.ID, nil
}

func (r *auditLogRepository) GetByEntity(ctx context.Context, kind domain.ContentKind, entityID string, limit int) ([]domain.AuditLogEntry, error) {
	collection := r.db.Collection(db.AuditLogsCollection)

	filter := bson.M{
		"entity_kind": kind,
		"entity_id":   entityID,
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditLogRepository) GetByActor(ctx context.Context, actorID string, since time.Time) ([]domain.AuditLogEntry, error) {
	collection := r.db.Collection(db.AuditLogsCollection)

	filter := bson.M{
		"performed_by.id": actorID,
	}
	if !since.IsZero() {
		filter["timestamp"] = bson.M{"$gte": since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditLogRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.AuditLogsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "entity_kind", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "performed_by.id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
