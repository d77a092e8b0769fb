package order

import (
	"errors"
	"io"
	"net/http"
	"time"

	"menuvoice/internal/core"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LineView is the wire shape of an order line.
type LineView struct {
	ItemID      string   `json:"item_id"`
	ItemName    string   `json:"item_name"`
	BasePrice   float64  `json:"base_price"`
	ModifierIDs []string `json:"modifier_ids"`
	Quantity    int      `json:"quantity"`
	ItemTotal   float64  `json:"item_total"`
	Subtotal    float64  `json:"subtotal"`
}

func (l Line) View() LineView {
	mods := l.ModifierIDs
	if mods == nil {
		mods = []string{}
	}
	return LineView{
		ItemID:      l.ItemID,
		ItemName:    l.ItemName,
		BasePrice:   l.BasePrice.InexactFloat64(),
		ModifierIDs: mods,
		Quantity:    l.Quantity,
		ItemTotal:   l.ItemTotal.InexactFloat64(),
		Subtotal:    l.Subtotal.InexactFloat64(),
	}
}

func lineViews(lines []Line) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.View())
	}
	return out
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// bindOptional accepts an empty body as an empty request.
func bindOptional(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func fail(c *gin.Context, err error) {
	c.JSON(core.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
}

// --------------------------------------------------
// POST /api/add_to_order
// --------------------------------------------------
func (h *Handler) AddToOrder(c *gin.Context) {
	var req struct {
		SessionID   string   `json:"session_id"`
		ItemID      string   `json:"item_id"`
		ModifierIDs []string `json:"modifier_ids"`
		Quantity    *int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sessionID, line, total, err := h.service.AddLine(req.SessionID, req.ItemID, req.ModifierIDs, quantity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"session_id":  sessionID,
		"order_item":  line.View(),
		"order_total": total.InexactFloat64(),
	})
}

// --------------------------------------------------
// POST /api/get_order_summary
// --------------------------------------------------
func (h *Handler) GetOrderSummary(c *gin.Context) {
	var req sessionRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	summary := h.service.Summarize(req.SessionID)
	order := gin.H{
		"items":      lineViews(summary.Lines),
		"total":      summary.Total.InexactFloat64(),
		"item_count": summary.Count,
	}
	if summary.CreatedAt == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
		return
	}

	order["created_at"] = summary.CreatedAt.Format(time.RFC3339)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": summary.SessionID,
		"order":      order,
	})
}

// --------------------------------------------------
// POST /api/clear_order
// --------------------------------------------------
func (h *Handler) ClearOrder(c *gin.Context) {
	var req sessionRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	h.service.Clear(req.SessionID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cleared",
	})
}

// --------------------------------------------------
// POST /api/remove_from_order
// --------------------------------------------------
func (h *Handler) RemoveFromOrder(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		ItemIndex *int   `json:"item_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	index := -1
	if req.ItemIndex != nil {
		index = *req.ItemIndex
	}

	removed, total, err := h.service.RemoveLine(req.SessionID, index)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"removed_item": removed.View(),
		"order_total":  total.InexactFloat64(),
	})
}
