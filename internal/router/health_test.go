package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menuvoice/internal/logging"
	"menuvoice/internal/menu"
	"menuvoice/internal/order"
	"menuvoice/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithLogger(t, nil)
}

func newTestRouterWithLogger(t *testing.T, logger *logging.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := menu.New([]menu.Item{
		{ID: "1", Name: "Pancakes", Category: "Breakfast", BasePrice: decimal.RequireFromString("8.00")},
		{ID: "2", Name: "Omelet", Category: "Breakfast", BasePrice: decimal.RequireFromString("9.50")},
		{ID: "3", Name: "Coffee", Category: "Drinks", BasePrice: decimal.RequireFromString("2.00")},
	}, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	menuService := menu.NewService(catalog)
	orderService := order.NewService(catalog, order.NewMemoryRepository())

	return NewRouter(Deps{
		Menu:        menuService,
		MenuHandler: menu.NewHandler(menuService),
		Search:      search.NewHandler(search.NewEngine(catalog), 0, 0),
		Order:       order.NewHandler(orderService),
		Logger:      logger,
	})
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body["status"])
	}
	if body["total_items"] != float64(3) || body["total_categories"] != float64(2) {
		t.Errorf("unexpected counts: %v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Endpoint not found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSearchThenOrder(t *testing.T) {
	r := newTestRouter(t)

	post := func(path, body string) map[string]any {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d (%s)", path, w.Code, w.Body.String())
		}
		var out map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s: invalid JSON: %v", path, err)
		}
		return out
	}

	found := post("/api/search_menu", `{"query":"omlet"}`)
	results, _ := found["results"].([]any)
	if len(results) == 0 {
		t.Fatalf("expected a match for omlet, got %v", found)
	}
	top := results[0].(map[string]any)
	if top["name"] != "Omelet" {
		t.Fatalf("expected Omelet first, got %v", top["name"])
	}

	added := post("/api/add_to_order", `{"item_id":"`+top["id"].(string)+`","quantity":2}`)
	session, _ := added["session_id"].(string)
	if session == "" {
		t.Fatalf("expected a session id, got %v", added)
	}
	if added["order_total"] != 19.0 {
		t.Errorf("expected total 19, got %v", added["order_total"])
	}

	summary := post("/api/get_order_summary", `{"session_id":"`+session+`"}`)
	o := summary["order"].(map[string]any)
	if o["item_count"] != float64(1) {
		t.Errorf("expected one line, got %v", o["item_count"])
	}
}

func TestCORSConfig(t *testing.T) {
	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins {
		t.Error("expected all origins for *")
	}
	cfg := corsConfig([]string{"http://localhost:3000"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestPanicIsLoggedAsRequest(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouterWithLogger(t, logging.New(logging.Config{Level: "debug", Output: &buf}))
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "msg=request") || !strings.Contains(out, "status=500") {
		t.Errorf("expected a request log line with status 500, got %q", out)
	}
}
