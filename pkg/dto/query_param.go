package dto

type Filter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

type PricePreviewParam struct {
	Price        string `query:"price"`
	Quantity     string `query:"quantity"`
	QuantityType string `query:"quantity_type"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
