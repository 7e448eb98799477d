package dto

import "io"

type ProductRequest struct {
	ID           string      `param:"id"`
	Name         string      `form:"name" json:"name"`
	CategoryID   string      `form:"category_id" json:"category_id"`
	Price        float64     `form:"price" json:"price"`
	Quantity     float64     `form:"quantity" json:"quantity"`
	QuantityType string      `form:"quantity_type" json:"quantity_type"`
	Images       []ImageFile `form:"-" json:"-"`
}

// ImageFile is an uploaded image handed from the controller to the service.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}
