package router

import (
	"net/http"
	"time"

	"menuvoice/internal/logging"
	"menuvoice/internal/menu"
	"menuvoice/internal/middleware"
	"menuvoice/internal/order"
	"menuvoice/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Menu        *menu.Service
	MenuHandler *menu.Handler
	Search      *search.Handler
	Order       *order.Handler
	Logger      *logging.Logger
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	r := gin.New()
	// the request logger wraps recovery so panics still get a request line
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		items, categories := d.Menu.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":           "healthy",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"total_items":      items,
			"total_categories": categories,
		})
	})

	api := r.Group("/api")
	{
		api.POST("/get_categories", d.MenuHandler.GetCategories)
		api.POST("/get_items_by_category", d.MenuHandler.GetItemsByCategory)
		api.POST("/get_item_details", d.MenuHandler.GetItemDetails)

		api.POST("/search_menu", d.Search.SearchMenu)

		api.POST("/add_to_order", d.Order.AddToOrder)
		api.POST("/get_order_summary", d.Order.GetOrderSummary)
		api.POST("/clear_order", d.Order.ClearOrder)
		api.POST("/remove_from_order", d.Order.RemoveFromOrder)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
