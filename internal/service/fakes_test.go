package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/repository"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductRepo struct {
	products map[primitive.ObjectID]domain.Product
	// insertRace makes AddProduct behave as if another writer took the name
	// between the lookup and the insert.
	insertRace bool
	lastFilter repository.ProductFilter
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}}
}

func (r *fakeProductRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.lastFilter = filter
	data := []domain.Product{}
	for _, p := range r.products {
		if !filter.CategoryID.IsZero() && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		if filter.RecommendedOnly && !p.Recommended {
			continue
		}
		data = append(data, p)
	}

	sort.Slice(data, func(i, j int) bool { return data[i].CreatedAt.After(data[j].CreatedAt) })
	if filter.Limit > 0 && int64(len(data)) > filter.Limit {
		data = data[:filter.Limit]
	}

	return data, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return p, errs.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetProductByName(ctx context.Context, name string) (domain.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	if r.insertRace {
		return primitive.NilObjectID, errs.ErrDuplicateName
	}
	if _, err := r.GetProductByName(ctx, data.Name); err == nil {
		return primitive.NilObjectID, errs.ErrDuplicateName
	}
	r.products[data.ID] = data
	return data.ID, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, data domain.Product, replaceImages bool) (domain.Product, error) {
	before, ok := r.products[data.ID]
	if !ok {
		return before, errs.ErrNotFound
	}

	updated := before
	updated.Name = data.Name
	updated.CategoryID = data.CategoryID
	updated.Price = data.Price
	updated.Quantity = data.Quantity
	updated.QuantityType = data.QuantityType
	if replaceImages {
		updated.Images = data.Images
	}
	r.products[data.ID] = updated

	return before, nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return p, errs.ErrNotFound
	}
	delete(r.products, id)
	return p, nil
}

func (r *fakeProductRepo) ToggleRecommended(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return p, errs.ErrNotFound
	}
	p.Recommended = !p.Recommended
	r.products[id] = p
	return p, nil
}

type fakeCategoryRepo struct {
	categories map[primitive.ObjectID]domain.Category
	lookupErr  error
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[primitive.ObjectID]domain.Category{}}
	for _, name := range names {
		c := domain.Category{ID: primitive.NewObjectID(), Name: name}
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) byName(name string) domain.Category {
	for _, c := range r.categories {
		if c.Name == name {
			return c
		}
	}
	return domain.Category{}
}

func (r *fakeCategoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeCategoryRepo) GetCategories(ctx context.Context) ([]domain.Category, error) {
	data := []domain.Category{}
	for _, c := range r.categories {
		data = append(data, c)
	}
	return data, nil
}

func (r *fakeCategoryRepo) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Category, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	data := []domain.Category{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			data = append(data, c)
		}
	}
	return data, nil
}

func (r *fakeCategoryRepo) AddCategory(ctx context.Context, data domain.Category) (primitive.ObjectID, error) {
	if r.byName(data.Name).Name != "" {
		return primitive.NilObjectID, errs.ErrDuplicateName
	}
	r.categories[data.ID] = data
	return data.ID, nil
}

func (r *fakeCategoryRepo) UpdateCategory(ctx context.Context, data domain.Category) error {
	if _, ok := r.categories[data.ID]; !ok {
		return errs.ErrNotFound
	}
	if existing := r.byName(data.Name); existing.Name != "" && existing.ID != data.ID {
		return errs.ErrDuplicateName
	}
	r.categories[data.ID] = data
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.categories[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	failKeys  map[string]bool
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{failKeys: map[string]bool{}}
}

func (s *fakeStorage) Upload(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	url := "https://b2.example.com/bucket/fruitStore/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	if s.failKeys[key] {
		return errs.ErrStorage
	}
	return nil
}

func (s *fakeStorage) KeyFromURL(url string) (string, bool) {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return "", false
	}
	return strings.Join(parts[len(parts)-2:], "/"), true
}

func (s *fakeStorage) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := append([]string(nil), s.deleted...)
	sort.Strings(keys)
	return keys
}

type fakePendingRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.PendingImageDeletion
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{entries: map[primitive.ObjectID]domain.PendingImageDeletion{}}
}

func (r *fakePendingRepo) AddPendingDeletion(ctx context.Context, key string, cause error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	r.entries[id] = domain.PendingImageDeletion{ID: id, Key: key, Attempts: 1, LastError: cause.Error()}
	return nil
}

func (r *fakePendingRepo) GetPendingDeletions(ctx context.Context, maxAttempts int, limit int64) ([]domain.PendingImageDeletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var data []domain.PendingImageDeletion
	for _, e := range r.entries {
		if e.Attempts < maxAttempts {
			data = append(data, e)
		}
	}
	return data, nil
}

func (r *fakePendingRepo) RemovePendingDeletion(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *fakePendingRepo) MarkAttemptFailed(ctx context.Context, id primitive.ObjectID, cause error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[id]
	e.Attempts++
	e.LastError = cause.Error()
	r.entries[id] = e
	return nil
}

func (r *fakePendingRepo) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []string
	for _, e := range r.entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys
}

type fakePublisher struct {
	events []dto.KafkaMessage
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	p.events = append(p.events, msg)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) eventTypes() []string {
	var types []string
	for _, e := range p.events {
		types = append(types, e.EventType)
	}
	return types
}

type fakeCache struct {
	invalidations int
	entries       map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

// Get only supports the []dto.ProductResponse and []dto.CategoryResponse
// values the services cache.
func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]dto.ProductResponse:
		*d = v.([]dto.ProductResponse)
	case *[]dto.CategoryResponse:
		*d = v.([]dto.CategoryResponse)
	default:
		return false, errors.New("unsupported cache type")
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.invalidations++
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

func imageFile(name string) dto.ImageFile {
	return dto.ImageFile{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        3,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("img")), nil
		},
	}
}
