package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(id primitive.ObjectID, name string, recommended bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "images", Value: bson.A{"https://host/bucket/fruitStore/a.jpg"}},
		{Key: "price", Value: 120.0},
		{Key: "quantity", Value: 2.0},
		{Key: "quantity_type", Value: "per_kg"},
		{Key: "recommended", Value: recommended},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(time.Now())},
	}
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "fruit_store." + productCollection
	ctx := context.Background()

	mt.Run("get products decodes cursor", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, productDoc(first, "Mango", false), productDoc(second, "Apple", true)),
		)

		data, err := repo.GetProducts(ctx, ProductFilter{NameContains: "a.(", NewestFirst: true, Limit: 5})
		require.NoError(mt, err)
		require.Len(mt, data, 2)
		assert.Equal(mt, "Mango", data[0].Name)
		assert.Equal(mt, domain.QuantityPerKg, data[0].QuantityType)
		assert.True(mt, data[1].Recommended)
	})

	mt.Run("get products empty", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		data, err := repo.GetProducts(ctx, ProductFilter{})
		require.NoError(mt, err)
		assert.NotNil(mt, data)
		assert.Empty(mt, data)
	})

	mt.Run("duplicate insert", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: fruit_store.products index: name_1",
		}))

		_, err := repo.AddProduct(ctx, domain.Product{ID: primitive.NewObjectID(), Name: "Mango"})
		assert.ErrorIs(mt, err, errs.ErrDuplicateName)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id := primitive.NewObjectID()
		got, err := repo.AddProduct(ctx, domain.Product{ID: id, Name: "Mango"})
		require.NoError(mt, err)
		assert.Equal(mt, id, got)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, productDoc(id, "Mango", false)))

		product, err := repo.GetProductByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, "Mango", product.Name)
		assert.Equal(mt, "https://host/bucket/fruitStore/a.jpg", product.PrimaryImage())
	})

	mt.Run("get by unknown id", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetProductByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("toggle returns updated product", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Mango", true)}))

		product, err := repo.ToggleRecommended(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, product.ID)
		assert.True(mt, product.Recommended)
	})

	mt.Run("toggle unknown id", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.ToggleRecommended(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("delete returns removed document", func(mt *mtest.T) {
		repo := CreateProductRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Mango", false)}))

		deleted, err := repo.DeleteProduct(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"https://host/bucket/fruitStore/a.jpg"}, deleted.Images)
	})
}

func TestCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("update unknown id", func(mt *mtest.T) {
		repo := CreateCategoryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateCategory(ctx, domain.Category{ID: primitive.NewObjectID(), Name: "ผลไม้"})
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("delete unknown id", func(mt *mtest.T) {
		repo := CreateCategoryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteCategory(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("by ids with no ids skips the query", func(mt *mtest.T) {
		repo := CreateCategoryRepository(mt.DB)

		data, err := repo.GetCategoriesByIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, data)
	})
}
