package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuvoice/internal/config"
	"menuvoice/internal/db"
	"menuvoice/internal/logging"
	"menuvoice/internal/menu"
	"menuvoice/internal/order"
	"menuvoice/internal/router"
	"menuvoice/internal/search"
	"menuvoice/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── CATALOG ─────────────────────────
	catalog, err := loadCatalog(ctx, cfg, logger.WithComponent("catalog"))
	if err != nil {
		log.Fatalf("❌ Catalog load failed (%s %s): %v", cfg.CatalogSource, cfg.CatalogPath, err)
	}
	log.Printf("📋 Loaded %d menu items in %d categories", catalog.Len(), len(catalog.Categories()))

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(catalog)
	engine := search.NewEngine(catalog)
	orderService := order.NewService(catalog, order.NewMemoryRepository())

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Deps{
		Menu:        menuService,
		MenuHandler: menu.NewHandler(menuService),
		Search:      search.NewHandler(engine, cfg.SearchThreshold, cfg.SearchLimit),
		Order:       order.NewHandler(orderService),
		Logger:      logger.WithComponent("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		log.Printf("🚀 API running at http://localhost%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Forced shutdown: %v", err)
	}
}

// loadCatalog builds the menu snapshot from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*menu.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceCSV:
		return menu.LoadCSVDir(cfg.CatalogPath, logger.Logger)

	case config.SourcePostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		// the catalog is read once; the pool is not needed afterwards
		defer pool.Close()
		return menu.NewPostgresRepository(pool).Load(ctx)

	case config.SourceR2:
		client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		return menu.NewObjectRepository(client, cfg.CatalogPath).Load(ctx)

	default:
		return menu.LoadFile(cfg.CatalogPath)
	}
}
