package dto

// IDResponse carries the identifier assigned to a created resource.
type IDResponse struct {
	ID string `json:"id"`
}
