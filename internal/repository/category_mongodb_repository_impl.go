package repository

import (
	"context"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryCollection = "categories"

type MongoDBCategoryRepositoryImpl struct {
	db *mongo.Database
}

func CreateCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoDBCategoryRepositoryImpl{db: db}
}

func (r *MongoDBCategoryRepositoryImpl) EnsureIndexes(ctx context.Context) (err error) {
	_, err = r.db.Collection(categoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Str("collection", categoryCollection).Msg("")
	}

	return
}

func (r *MongoDBCategoryRepositoryImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	return r.find(ctx, "GetCategories", bson.D{})
}

func (r *MongoDBCategoryRepositoryImpl) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Category, err error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}

	return r.find(ctx, "GetCategoriesByIDs", bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *MongoDBCategoryRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Category, err error) {
	cursor, err := r.db.Collection(categoryCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Category{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBCategoryRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(categoryCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrDuplicateName
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddCategory").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBCategoryRepositoryImpl) UpdateCategory(ctx context.Context, data domain.Category) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: data.Name}}}}

	result, err := r.db.Collection(categoryCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateName
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCategory").Msg("Failed to update category")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBCategoryRepositoryImpl) DeleteCategory(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(categoryCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCategory").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}
