package service

import (
	"math"
	"strings"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productFromRequest validates the editable fields of a product request.
func productFromRequest(data dto.ProductRequest) (product domain.Product, err error) {
	verr := &errs.ValidationError{}

	product.Name = strings.TrimSpace(data.Name)
	if product.Name == "" {
		verr.Add("name", "required")
	}

	categoryID, perr := primitive.ObjectIDFromHex(data.CategoryID)
	switch {
	case data.CategoryID == "":
		verr.Add("category_id", "required")
	case perr != nil:
		verr.Add("category_id", "objectid")
	default:
		product.CategoryID = categoryID
	}

	if !positive(data.Price) {
		verr.Add("price", "gt=0")
	}
	if !positive(data.Quantity) {
		verr.Add("quantity", "gt=0")
	}
	product.Price = data.Price
	product.Quantity = data.Quantity

	product.QuantityType = domain.QuantityType(data.QuantityType).OrDefault()
	if !product.QuantityType.Valid() {
		verr.Add("quantity_type", "oneof=per_kg per_piece per_pack")
	}

	if err = verr.OrNil(); err != nil {
		return
	}

	return product, checkImages(data.Images)
}

func categoryName(data dto.CategoryRequest) (string, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		verr := &errs.ValidationError{}
		verr.Add("name", "required")
		return "", verr
	}

	return name, nil
}

// parseID turns a path id into an ObjectID. Malformed ids cannot name an
// existing resource.
func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return objectID, errs.ErrNotFound
	}

	return objectID, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
