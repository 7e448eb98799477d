package service

import (
	"context"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/cache/redis"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/message-queue/kafka"
	"github.com/ohmfruit/fruitstore-service/pkg/pricing"
	"github.com/rs/zerolog/log"
)

const (
	cachePrefix               = "catalog:"
	cacheKeyRecommended       = cachePrefix + "products:recommended"
	cacheKeyCategories        = cachePrefix + "categories"
	cacheKeyLatestProductsFmt = cachePrefix + "products:new:%d"
)

// catalogNotifier tells caches and downstream consumers that the catalog
// changed. Neither failure is reported to the caller since the change is
// already committed.
type catalogNotifier struct {
	publisher kafka.Publisher
	cache     redis.Cache
}

func (n catalogNotifier) changed(ctx context.Context, eventType, key string, data interface{}) {
	if err := n.cache.InvalidatePrefix(ctx, cachePrefix); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "InvalidateCache").Str("event_type", eventType).Msg("")
	}

	err := n.publisher.Publish(ctx, key, dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PublishEvent").Str("event_type", eventType).Msg("")
	}
}

// cached serves key from the cache, loading and storing it on a miss. Cache
// failures degrade to a plain load.
func cached[T any](ctx context.Context, cache redis.Cache, key string, load func() (T, error)) (T, error) {
	var data T

	hit, err := cache.Get(ctx, key, &data)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "CacheGet").Str("key", key).Msg("")
	}
	if hit {
		return data, nil
	}

	data, err = load()
	if err != nil {
		return data, err
	}

	if err := cache.Set(ctx, key, data); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "CacheSet").Str("key", key).Msg("")
	}

	return data, nil
}

func toCategoryResponse(c domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID.Hex(), Name: c.Name}
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID.Hex(),
		Name:         p.Name,
		Images:       p.Images,
		Thumbnail:    p.PrimaryImage(),
		CategoryID:   p.CategoryID.Hex(),
		Price:        p.Price,
		Quantity:     p.Quantity,
		QuantityType: string(p.QuantityType.OrDefault()),
		UnitLabel:    pricing.UnitLabel(p.QuantityType),
		Recommended:  p.Recommended,
		CreatedAt:    p.CreatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.Category != nil {
		category := toCategoryResponse(*p.Category)
		resp.Category = &category
	}
	if unitPrice, ok := pricing.UnitPrice(p.Price, p.Quantity); ok {
		resp.UnitPrice = unitPrice
	}

	return resp
}
