// Package pricing renders per-unit prices for display. Unit prices are never
// stored.
package pricing

import (
	"math"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"github.com/shopspring/decimal"
)

// FormPreviewFallback is what the admin form shows while price or quantity
// is missing.
const FormPreviewFallback = "0.00"

// UnitPrice returns price/quantity with exactly two decimals, rounded half
// away from zero. ok is false when there is nothing to show: a zero or
// non-finite price, or a quantity that is not strictly positive.
func UnitPrice(price, quantity float64) (unitPrice string, ok bool) {
	if !usable(price) || price == 0 {
		return "", false
	}
	if !usable(quantity) || quantity <= 0 {
		return "", false
	}

	p := decimal.NewFromFloat(price)
	q := decimal.NewFromFloat(quantity)

	return p.DivRound(q, 16).StringFixed(2), true
}

// FormPreview is UnitPrice for the admin form, which always shows a value.
func FormPreview(price, quantity float64) string {
	unitPrice, ok := UnitPrice(price, quantity)
	if !ok {
		return FormPreviewFallback
	}

	return unitPrice
}

// UnitLabel names the unit a quantity type is priced in. Unknown or empty
// types are priced per kilogram.
func UnitLabel(t domain.QuantityType) string {
	switch t {
	case domain.QuantityPerPiece:
		return "piece"
	case domain.QuantityPerPack:
		return "pack"
	default:
		return "kg"
	}
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
