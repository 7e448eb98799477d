package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuantityType string

const (
	QuantityPerKg    QuantityType = "per_kg"
	QuantityPerPiece QuantityType = "per_piece"
	QuantityPerPack  QuantityType = "per_pack"
)

// Valid reports whether t is one of the known quantity types.
func (t QuantityType) Valid() bool {
	switch t {
	case QuantityPerKg, QuantityPerPiece, QuantityPerPack:
		return true
	}
	return false
}

// OrDefault returns per_kg for an empty quantity type.
func (t QuantityType) OrDefault() QuantityType {
	if t == "" {
		return QuantityPerKg
	}
	return t
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Images       []string           `bson:"images" json:"images"`
	CategoryID   primitive.ObjectID `bson:"category_id" json:"category_id"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	QuantityType QuantityType       `bson:"quantity_type" json:"quantity_type"`
	Recommended  bool               `bson:"recommended" json:"recommended"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`

	// Category is filled in on reads; nil when the reference dangles.
	Category *Category `bson:"-" json:"category"`
}

// PrimaryImage returns the thumbnail shown in list views.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
