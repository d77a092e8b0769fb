package menu

import (
	"errors"
	"net/http"

	"menuvoice/internal/core"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/get_categories
// --------------------------------------------------
func (h *Handler) GetCategories(c *gin.Context) {
	categories := h.service.ListCategories()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"total":      len(categories),
	})
}

// --------------------------------------------------
// POST /api/get_items_by_category
// --------------------------------------------------
func (h *Handler) GetItemsByCategory(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	cat, items, err := h.service.ItemsByCategory(req.Category)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success":              false,
				"error":                `Category "` + req.Category + `" not found`,
				"available_categories": h.service.Catalog().CategoryNames(),
			})
			return
		}
		c.JSON(core.HTTPStatus(err), gin.H{"success": false, "error": "Category name is required"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":          item.ID,
			"name":        item.Name,
			"price":       item.BasePrice.InexactFloat64(),
			"description": item.Description,
			"available":   item.Available,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": cat.Name,
		"items":    out,
		"total":    len(out),
	})
}

// --------------------------------------------------
// POST /api/get_item_details
// --------------------------------------------------
func (h *Handler) GetItemDetails(c *gin.Context) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	item, err := h.service.ItemDetails(req.ItemID)
	if err != nil {
		msg := "Item ID is required"
		if errors.Is(err, core.ErrNotFound) {
			msg = `Item with ID "` + req.ItemID + `" not found`
		}
		c.JSON(core.HTTPStatus(err), gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item.View(),
	})
}
