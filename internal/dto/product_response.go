package dto

import "time"

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Images       []string          `json:"images"`
	Thumbnail    string            `json:"thumbnail"`
	CategoryID   string            `json:"category_id"`
	Category     *CategoryResponse `json:"category"`
	Price        float64           `json:"price"`
	Quantity     float64           `json:"quantity"`
	QuantityType string            `json:"quantity_type"`
	UnitPrice    string            `json:"unit_price,omitempty"`
	UnitLabel    string            `json:"unit_label"`
	Recommended  bool              `json:"recommended"`
	CreatedAt    time.Time         `json:"created_at"`
}

type PricePreviewResponse struct {
	UnitPrice string `json:"unit_price"`
	UnitLabel string `json:"unit_label"`
}

type BulkDeleteResponse struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"not_found"`
}
