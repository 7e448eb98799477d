package repository

import (
	"context"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFilter narrows a product listing. Zero values disable a condition.
type ProductFilter struct {
	CategoryID      primitive.ObjectID
	NameContains    string
	RecommendedOnly bool
	NewestFirst     bool
	Limit           int64
}

type ProductRepository interface {
	EnsureIndexes(ctx context.Context) (err error)
	GetProducts(ctx context.Context, filter ProductFilter) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
	GetProductByName(ctx context.Context, name string) (product domain.Product, err error)
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	// UpdateProduct writes the editable fields, and the image list when
	// replaceImages is set, returning the product as it was before.
	UpdateProduct(ctx context.Context, data domain.Product, replaceImages bool) (before domain.Product, err error)
	// DeleteProduct removes the product and returns the removed document.
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (deleted domain.Product, err error)
	ToggleRecommended(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
}

type CategoryRepository interface {
	EnsureIndexes(ctx context.Context) (err error)
	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Category, err error)
	AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error)
	UpdateCategory(ctx context.Context, data domain.Category) (err error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) (err error)
}

type PendingDeletionRepository interface {
	AddPendingDeletion(ctx context.Context, key string, cause error) (err error)
	// GetPendingDeletions returns up to limit entries with fewer than
	// maxAttempts attempts, oldest first.
	GetPendingDeletions(ctx context.Context, maxAttempts int, limit int64) (data []domain.PendingImageDeletion, err error)
	RemovePendingDeletion(ctx context.Context, id primitive.ObjectID) (err error)
	MarkAttemptFailed(ctx context.Context, id primitive.ObjectID, cause error) (err error)
}
