package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/cache/redis"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/message-queue/kafka"
	"github.com/ohmfruit/fruitstore-service/internal/repository"
	pkgdto "github.com/ohmfruit/fruitstore-service/pkg/dto"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/pricing"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultLatestLimit = 5
	maxLatestLimit     = 50
)

type ProductServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storage      ImageStorage
	cleanup      ImageCleanupService
	cache        redis.Cache
	notifier     catalogNotifier
	now          func() time.Time
}

func CreateProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	storage ImageStorage,
	cleanup ImageCleanupService,
	publisher kafka.Publisher,
	cache redis.Cache,
) ProductService {
	return &ProductServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		cleanup:      cleanup,
		cache:        cache,
		notifier:     catalogNotifier{publisher: publisher, cache: cache},
		now:          time.Now,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []dto.ProductResponse, err error) {
	repoFilter := repository.ProductFilter{
		NameContains: strings.TrimSpace(filter.Search),
		NewestFirst:  true,
	}

	if filter.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(filter.Category)
		if err != nil {
			verr := &errs.ValidationError{}
			verr.Add("category", "objectid")
			return nil, verr
		}
		repoFilter.CategoryID = categoryID
	}

	products, err := s.productRepo.GetProducts(ctx, repoFilter)
	if err != nil {
		return
	}

	return s.withCategories(ctx, products)
}

func (s *ProductServiceImpl) GetLatestProducts(ctx context.Context, limit int) (data []dto.ProductResponse, err error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	if limit > maxLatestLimit {
		limit = maxLatestLimit
	}

	return cached(ctx, s.cache, fmt.Sprintf(cacheKeyLatestProductsFmt, limit), func() ([]dto.ProductResponse, error) {
		products, err := s.productRepo.GetProducts(ctx, repository.ProductFilter{NewestFirst: true, Limit: int64(limit)})
		if err != nil {
			return nil, err
		}

		return s.withCategories(ctx, products)
	})
}

func (s *ProductServiceImpl) GetRecommendedProducts(ctx context.Context) (data []dto.ProductResponse, err error) {
	return cached(ctx, s.cache, cacheKeyRecommended, func() ([]dto.ProductResponse, error) {
		products, err := s.productRepo.GetProducts(ctx, repository.ProductFilter{RecommendedOnly: true})
		if err != nil {
			return nil, err
		}

		return s.withCategories(ctx, products)
	})
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	productID, err := parseID(id)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	data, err := s.withCategories(ctx, []domain.Product{product})
	if err != nil {
		return
	}

	return data[0], nil
}

// GetPricePreview never fails; unparseable numbers count as zero.
func (s *ProductServiceImpl) GetPricePreview(param pkgdto.PricePreviewParam) dto.PricePreviewResponse {
	price, _ := strconv.ParseFloat(strings.TrimSpace(param.Price), 64)
	quantity, _ := strconv.ParseFloat(strings.TrimSpace(param.Quantity), 64)

	return dto.PricePreviewResponse{
		UnitPrice: pricing.FormPreview(price, quantity),
		UnitLabel: pricing.UnitLabel(domain.QuantityType(param.QuantityType)),
	}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (resp dto.ProductResponse, err error) {
	product, err := productFromRequest(data)
	if err != nil {
		return
	}

	if err = s.ensureNameAvailable(ctx, product.Name, primitive.NilObjectID); err != nil {
		return
	}

	product.Images, err = uploadImages(ctx, s.storage, data.Images)
	if err != nil {
		s.cleanup.RemoveImages(ctx, product.Images)
		return
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	product.Recommended = false

	if _, err = s.productRepo.AddProduct(ctx, product); err != nil {
		s.cleanup.RemoveImages(ctx, product.Images)
		return
	}

	resp = s.populateOne(ctx, product)
	s.notifier.changed(ctx, dto.EventAddProduct, resp.ID, resp)

	return resp, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest) (resp dto.ProductResponse, err error) {
	id, err := parseID(data.ID)
	if err != nil {
		return
	}

	product, err := productFromRequest(data)
	if err != nil {
		return
	}
	product.ID = id

	if err = s.ensureNameAvailable(ctx, product.Name, id); err != nil {
		return
	}

	replaceImages := len(data.Images) > 0
	if replaceImages {
		product.Images, err = uploadImages(ctx, s.storage, data.Images)
		if err != nil {
			s.cleanup.RemoveImages(ctx, product.Images)
			return
		}
	}

	before, err := s.productRepo.UpdateProduct(ctx, product, replaceImages)
	if err != nil {
		s.cleanup.RemoveImages(ctx, product.Images)
		return
	}

	if replaceImages {
		s.cleanup.RemoveImages(ctx, replacedImages(before.Images, product.Images))
	} else {
		product.Images = before.Images
	}
	product.Recommended = before.Recommended
	product.CreatedAt = before.CreatedAt

	resp = s.populateOne(ctx, product)
	s.notifier.changed(ctx, dto.EventUpdateProduct, resp.ID, resp)

	return resp, nil
}

// DeleteProduct removes the record first. Image cleanup follows and never
// fails the call.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := parseID(id)
	if err != nil {
		return
	}

	deleted, err := s.productRepo.DeleteProduct(ctx, productID)
	if err != nil {
		return
	}

	s.cleanup.RemoveImages(ctx, deleted.Images)
	s.notifier.changed(ctx, dto.EventDeleteProduct, id, dto.DeletedResource{ID: id})

	return nil
}

func (s *ProductServiceImpl) DeleteProducts(ctx context.Context, req pkgdto.BulkDeleteRequest) (resp dto.BulkDeleteResponse, err error) {
	if len(req.IDs) == 0 {
		verr := &errs.ValidationError{}
		verr.Add("ids", "required")
		return resp, verr
	}

	resp.Deleted = []string{}
	resp.NotFound = []string{}

	seen := make(map[string]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		err = s.DeleteProduct(ctx, id)
		switch {
		case err == nil:
			resp.Deleted = append(resp.Deleted, id)
		case errors.Is(err, errs.ErrNotFound):
			resp.NotFound = append(resp.NotFound, id)
		default:
			log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProducts").Str("id", id).Msg("")
			return resp, err
		}
	}

	return resp, nil
}

func (s *ProductServiceImpl) ToggleRecommended(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	productID, err := parseID(id)
	if err != nil {
		return
	}

	product, err := s.productRepo.ToggleRecommended(ctx, productID)
	if err != nil {
		return
	}

	resp = s.populateOne(ctx, product)
	s.notifier.changed(ctx, dto.EventUpdateProduct, resp.ID, resp)

	return resp, nil
}

// ensureNameAvailable rejects a name already used by a product other than
// self. The unique index still catches races with concurrent writers.
func (s *ProductServiceImpl) ensureNameAvailable(ctx context.Context, name string, self primitive.ObjectID) error {
	existing, err := s.productRepo.GetProductByName(ctx, name)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return errs.ErrDuplicateName
	}

	return nil
}

// populateOne runs after a write has committed, so a failed category lookup
// only drops the category from the response.
func (s *ProductServiceImpl) populateOne(ctx context.Context, product domain.Product) dto.ProductResponse {
	resp, err := s.withCategories(ctx, []domain.Product{product})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "PopulateCategory").Str("product_id", product.ID.Hex()).Msg("")
		product.Category = nil
		return toProductResponse(product)
	}

	return resp[0]
}

// withCategories resolves category references with a single query. Dangling
// references leave the category empty.
func (s *ProductServiceImpl) withCategories(ctx context.Context, products []domain.Product) ([]dto.ProductResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]struct{}, len(products))
	for _, p := range products {
		if p.CategoryID.IsZero() {
			continue
		}
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		ids = append(ids, p.CategoryID)
	}

	categories, err := s.categoryRepo.GetCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if c, ok := byID[p.CategoryID]; ok {
			p.Category = &c
		}
		data = append(data, toProductResponse(p))
	}

	return data, nil
}

// replacedImages returns the old images that are not part of the new list.
func replacedImages(old, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, url := range current {
		keep[url] = struct{}{}
	}

	var gone []string
	for _, url := range old {
		if _, ok := keep[url]; !ok {
			gone = append(gone, url)
		}
	}

	return gone
}
