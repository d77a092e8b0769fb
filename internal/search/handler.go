package search

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLimit is how many results the search endpoint returns.
const DefaultLimit = 5

type Handler struct {
	engine    *Engine
	threshold float64
	limit     int
}

func NewHandler(engine *Engine, threshold float64, limit int) *Handler {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Handler{engine: engine, threshold: threshold, limit: limit}
}

// SearchMenu handles POST /api/search_menu. A miss is a normal answer
// (found=false) so the agent can tell the caller the item does not exist.
func (h *Handler) SearchMenu(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Search query is required"})
		return
	}

	results := h.engine.Search(query, h.threshold)
	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"found":   false,
			"query":   query,
			"message": fmt.Sprintf("No items found matching %q", query),
			"results": []Result{},
		})
		return
	}

	top := results
	if len(top) > h.limit {
		top = top[:h.limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"found":         true,
		"query":         query,
		"results":       top,
		"total_matches": len(results),
	})
}
