package dto

const (
	EventAddProduct     = "add_product"
	EventUpdateProduct  = "update_product"
	EventDeleteProduct  = "delete_product"
	EventAddCategory    = "add_category"
	EventUpdateCategory = "update_category"
	EventDeleteCategory = "delete_category"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type DeletedResource struct {
	ID string `json:"id"`
}
