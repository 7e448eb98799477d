package dto

type CategoryRequest struct {
	ID   string `param:"id"`
	Name string `json:"name"`
}
