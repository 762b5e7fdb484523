package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/persistence/db"
)

type notificationRepository struct {
	db *mongo.Database
}

func NewNotificationRepository(db *mongo.Database) domain.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Insert(ctx context.Context, event *domain.NotificationEvent) error {
	collection := r.db.Collection(db.NotificationsCollection)

	_, err := collection.InsertOne(ctx, event)
	return err
}

func (r *notificationRepository) GetByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.NotificationEvent, error) {
	collection := r.db.Collection(db.NotificationsCollection)

	filter := bson.M{"recipient_id": recipientID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []domain.NotificationEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	collection := r.db.Collection(db.NotificationsCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("notification not found")
	}

	return nil
}

func (r *notificationRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.NotificationsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipient_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(2592000), // 30 days TTL
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
