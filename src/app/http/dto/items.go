package dto

// CreateItemRequest is the payload for POST /api/items.
// A pointer keeps a missing or null name apart from an empty one; both are rejected.
type CreateItemRequest struct {
	Name *string `json:"name" binding:"required"`
}

// ListItemsQuery holds the query string of GET /api/items.
type ListItemsQuery struct {
	Q string `form:"q"`
}
