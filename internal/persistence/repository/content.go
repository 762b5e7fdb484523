package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/persistence/db"
)

type contentRepository struct {
	db *mongo.Database
}

func NewContentRepository(db *mongo.Database) domain.ContentRepository {
	return &contentRepository{
		db: db,
	}
}

func (r *contentRepository) GetByID(ctx context.Context, kind domain.ContentKind, id string) (*domain.ContentItem, error) {
	collection := r.db.Collection(db.ContentCollection)

	filter := bson.M{
		"_id":  id,
		"kind": kind,
	}

	var item domain.ContentItem
	if err := collection.FindOne(ctx, filter).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, err
	}

	return &item, nil
}

// ApplyTransition replaces the full document, conditioned on the status and
// trash flag the transition was computed from. A zero match count means a
// concurrent transition won the race.
func (r *contentRepository) ApplyTransition(ctx context.Context, item *domain.ContentItem, pre domain.TransitionPrecondition) error {
	collection := r.db.Collection(db.ContentCollection)

	filter := bson.M{
		"_id":    item.ID,
		"kind":   item.Kind,
		"status": pre.Status,
	}
	if pre.TrashedByWriter {
		filter["trashed_by_writer"] = true
	} else {
		// The flag is stored with omitempty, so false means absent.
		filter["trashed_by_writer"] = bson.M{"$ne": true}
	}

	result, err := collection.ReplaceOne(ctx, filter, item)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *contentRepository) Delete(ctx context.Context, kind domain.ContentKind, id string) error {
	collection := r.db.Collection(db.ContentCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id, "kind": kind})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}

	return nil
}

func (r *contentRepository) AdjustPublishedCount(ctx context.Context, ownerID string, delta int) error {
	if delta == 0 {
		return nil
	}

	collection := r.db.Collection(db.ContentCollection)

	filter := bson.M{
		"_id":  ownerID,
		"kind": domain.KindUserAccount,
	}
	update := bson.M{
		"$inc": bson.M{"published_count": delta},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}

func (r *contentRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.ContentCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "kind", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "kind", Value: 1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
