package service

import (
	"context"

	"github.com/ohmfruit/fruitstore-service/internal/dto"
	pkgdto "github.com/ohmfruit/fruitstore-service/pkg/dto"
)

// ImageStorage is the object store holding product images.
type ImageStorage interface {
	Upload(ctx context.Context, filename, contentType string, body []byte) (url string, err error)
	Delete(ctx context.Context, key string) (err error)
	KeyFromURL(url string) (key string, ok bool)
}

type ProductService interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []dto.ProductResponse, err error)
	GetLatestProducts(ctx context.Context, limit int) (data []dto.ProductResponse, err error)
	GetRecommendedProducts(ctx context.Context) (data []dto.ProductResponse, err error)
	GetProduct(ctx context.Context, id string) (resp dto.ProductResponse, err error)
	GetPricePreview(param pkgdto.PricePreviewParam) dto.PricePreviewResponse
	AddProduct(ctx context.Context, data dto.ProductRequest) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest) (resp dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	DeleteProducts(ctx context.Context, req pkgdto.BulkDeleteRequest) (resp dto.BulkDeleteResponse, err error)
	ToggleRecommended(ctx context.Context, id string) (resp dto.ProductResponse, err error)
}

type CategoryService interface {
	GetCategories(ctx context.Context) (data []dto.CategoryResponse, err error)
	AddCategory(ctx context.Context, data dto.CategoryRequest) (resp dto.CategoryResponse, err error)
	UpdateCategory(ctx context.Context, data dto.CategoryRequest) (resp dto.CategoryResponse, err error)
	DeleteCategory(ctx context.Context, id string) (err error)
}

type ImageCleanupService interface {
	// RemoveImages deletes the objects behind urls concurrently and waits for
	// all of them. Failures are logged and queued for retry, never returned.
	RemoveImages(ctx context.Context, urls []string)
	// RetryPendingDeletions makes one more attempt at every queued deletion.
	RetryPendingDeletions(ctx context.Context) (err error)
}
