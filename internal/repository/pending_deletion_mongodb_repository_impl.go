package repository

import (
	"context"
	"time"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pendingDeletionCollection = "pending_image_deletions"

type MongoDBPendingDeletionRepositoryImpl struct {
	db *mongo.Database
}

func CreatePendingDeletionRepository(db *mongo.Database) PendingDeletionRepository {
	return &MongoDBPendingDeletionRepositoryImpl{db: db}
}

func (r *MongoDBPendingDeletionRepositoryImpl) AddPendingDeletion(ctx context.Context, key string, cause error) (err error) {
	entry := domain.PendingImageDeletion{
		Key:       key,
		Attempts:  1,
		CreatedAt: time.Now(),
	}
	if cause != nil {
		entry.LastError = cause.Error()
	}

	_, err = r.db.Collection(pendingDeletionCollection).InsertOne(ctx, entry)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddPendingDeletion").Str("key", key).Msg("")
	}

	return
}

func (r *MongoDBPendingDeletionRepositoryImpl) GetPendingDeletions(ctx context.Context, maxAttempts int, limit int64) (data []domain.PendingImageDeletion, err error) {
	filter := bson.D{{Key: "attempts", Value: bson.D{{Key: "$lt", Value: maxAttempts}}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(limit)

	cursor, err := r.db.Collection(pendingDeletionCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPendingDeletions").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPendingDeletions").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBPendingDeletionRepositoryImpl) RemovePendingDeletion(ctx context.Context, id primitive.ObjectID) (err error) {
	_, err = r.db.Collection(pendingDeletionCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RemovePendingDeletion").Msg("")
	}

	return
}

func (r *MongoDBPendingDeletionRepositoryImpl) MarkAttemptFailed(ctx context.Context, id primitive.ObjectID, cause error) (err error) {
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "attempts", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "last_error", Value: cause.Error()}}},
	}

	_, err = r.db.Collection(pendingDeletionCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkAttemptFailed").Msg("")
	}

	return
}
