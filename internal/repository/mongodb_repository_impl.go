package repository

import (
	"context"
	"errors"
	"regexp"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(productCollection)
}

func (r *MongoDBProductRepositoryImpl) EnsureIndexes(ctx context.Context) (err error) {
	_, err = r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Str("collection", productCollection).Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter ProductFilter) (data []domain.Product, err error) {
	query := bson.D{}
	if !filter.CategoryID.IsZero() {
		query = append(query, bson.E{Key: "category_id", Value: filter.CategoryID})
	}
	if filter.NameContains != "" {
		query = append(query, bson.E{Key: "name", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.NameContains),
			Options: "i",
		}})
	}
	if filter.RecommendedOnly {
		query = append(query, bson.E{Key: "recommended", Value: true})
	}

	opts := options.Find()
	if filter.NewestFirst {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	err = r.collection().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	return product, r.mapFindErr(ctx, "GetProductByID", err)
}

func (r *MongoDBProductRepositoryImpl) GetProductByName(ctx context.Context, name string) (product domain.Product, err error) {
	err = r.collection().FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&product)
	return product, r.mapFindErr(ctx, "GetProductByName", err)
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.collection().InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrDuplicateName
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product, replaceImages bool) (before domain.Product, err error) {
	fields := bson.D{
		{Key: "name", Value: data.Name},
		{Key: "category_id", Value: data.CategoryID},
		{Key: "price", Value: data.Price},
		{Key: "quantity", Value: data.Quantity},
		{Key: "quantity_type", Value: data.QuantityType},
	}
	if replaceImages {
		fields = append(fields, bson.E{Key: "images", Value: data.Images})
	}

	err = r.collection().FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: data.ID}},
		bson.D{{Key: "$set", Value: fields}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return before, errs.ErrDuplicateName
	}

	return before, r.mapFindErr(ctx, "UpdateProduct", err)
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (deleted domain.Product, err error) {
	err = r.collection().FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&deleted)
	return deleted, r.mapFindErr(ctx, "DeleteProduct", err)
}

// ToggleRecommended flips the flag server side so concurrent toggles never
// lose an update.
func (r *MongoDBProductRepositoryImpl) ToggleRecommended(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "recommended", Value: bson.D{{Key: "$not", Value: "$recommended"}}}}}},
	}

	err = r.collection().FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)

	return product, r.mapFindErr(ctx, "ToggleRecommended", err)
}

func (r *MongoDBProductRepositoryImpl) mapFindErr(ctx context.Context, component string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}

	log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
	return err
}
