package service

import (
	"context"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/cache/redis"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/message-queue/kafka"
	"github.com/ohmfruit/fruitstore-service/internal/repository"
	"github.com/ohmfruit/fruitstore-service/pkg/sorting"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	cache        redis.Cache
	notifier     catalogNotifier
}

func CreateCategoryService(categoryRepo repository.CategoryRepository, publisher kafka.Publisher, cache redis.Cache) CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
		cache:        cache,
		notifier:     catalogNotifier{publisher: publisher, cache: cache},
	}
}

// GetCategories returns every category in display order: digits, then
// latin, then thai, then Thai collation.
func (s *CategoryServiceImpl) GetCategories(ctx context.Context) (data []dto.CategoryResponse, err error) {
	return cached(ctx, s.cache, cacheKeyCategories, func() ([]dto.CategoryResponse, error) {
		categories, err := s.categoryRepo.GetCategories(ctx)
		if err != nil {
			return nil, err
		}

		sorted := sorting.SortCategories(categories)
		data := make([]dto.CategoryResponse, 0, len(sorted))
		for _, c := range sorted {
			data = append(data, toCategoryResponse(c))
		}

		return data, nil
	})
}

func (s *CategoryServiceImpl) AddCategory(ctx context.Context, data dto.CategoryRequest) (resp dto.CategoryResponse, err error) {
	name, err := categoryName(data)
	if err != nil {
		return
	}

	category := domain.Category{ID: primitive.NewObjectID(), Name: name}
	if _, err = s.categoryRepo.AddCategory(ctx, category); err != nil {
		return
	}

	resp = toCategoryResponse(category)
	s.notifier.changed(ctx, dto.EventAddCategory, resp.ID, resp)

	return resp, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, data dto.CategoryRequest) (resp dto.CategoryResponse, err error) {
	id, err := parseID(data.ID)
	if err != nil {
		return
	}

	name, err := categoryName(data)
	if err != nil {
		return
	}

	category := domain.Category{ID: id, Name: name}
	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return
	}

	resp = toCategoryResponse(category)
	s.notifier.changed(ctx, dto.EventUpdateCategory, resp.ID, resp)

	return resp, nil
}

// DeleteCategory leaves products that reference the category untouched; they
// are listed without a category afterwards.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	categoryID, err := parseID(id)
	if err != nil {
		return
	}

	if err = s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return
	}

	s.notifier.changed(ctx, dto.EventDeleteCategory, id, dto.DeletedResource{ID: id})

	return nil
}
