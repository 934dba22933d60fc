package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"itemsapi/src/app/http/dto"
	"itemsapi/src/app/http/response"
	"itemsapi/src/app/middleware"
	"itemsapi/src/core/usecase"
)

// ItemHandler handles the items endpoints.
type ItemHandler struct {
	itemService *usecase.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *usecase.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List returns the newest items.
// GET /api/items?q=
func (h *ItemHandler) List(c *gin.Context) {
	var query dto.ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "q", "invalid query", middleware.GetRequestID(c))
		return
	}

	items, err := h.itemService.List(c.Request.Context(), query.Q)
	if err != nil {
		_ = c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Collection(c, items)
}

// Get returns a single item. Ids that are not integers cannot exist.
// GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, "Item not found", middleware.GetRequestID(c))
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, item)
}

// Create stores a new item.
// POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		response.ValidationError(c, "name", "name is required", middleware.GetRequestID(c))
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), *req.Name)
	if err != nil {
		_ = c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, item)
}
