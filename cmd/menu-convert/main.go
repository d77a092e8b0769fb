package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"menuvoice/internal/db"
	"menuvoice/internal/logging"
	"menuvoice/internal/menu"
	"menuvoice/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type options struct {
	dataDir     string
	out         string
	sample      string
	databaseURL string
	publishKey  string
	logLevel    string
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	opts := options{}

	fs := pflag.NewFlagSet("menu-convert", pflag.ContinueOnError)
	fs.StringVar(&opts.dataDir, "data-dir", "data", "directory with one CSV export per category")
	fs.StringVar(&opts.out, "out", "menu_data.json", "output menu file")
	fs.StringVar(&opts.sample, "sample", "menu_sample.json", "sample output file (empty to skip)")
	fs.StringVar(&opts.databaseURL, "database-url", "", "also store the catalog in PostgreSQL")
	fs.StringVar(&opts.publishKey, "publish-key", "", "also upload the menu file to R2 under this key")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	logger := logging.New(logging.Config{Level: opts.logLevel, Output: os.Stderr}).WithComponent("convert")

	log.Printf("📂 Reading CSV exports from %s", opts.dataDir)
	catalog, err := menu.LoadCSVDir(opts.dataDir, logger.Logger)
	if err != nil {
		return err
	}

	if err := writeFile(opts.out, func(f *os.File) error {
		return menu.WriteDocument(f, catalog, time.Now())
	}); err != nil {
		return err
	}

	log.Printf("✅ Successfully processed menu data!")
	log.Printf("   📊 Total items: %d", catalog.Len())
	log.Printf("   📁 Total categories: %d", len(catalog.Categories()))
	log.Printf("   💾 Saved to: %s", opts.out)

	log.Printf("📋 Category Breakdown:")
	for _, cat := range catalog.Categories() {
		log.Printf("   • %s: %d items", cat.Name, len(cat.ItemIDs))
	}

	if opts.sample != "" {
		if err := writeFile(opts.sample, func(f *os.File) error {
			return menu.WriteSample(f, catalog)
		}); err != nil {
			return err
		}
		log.Printf("   📄 Sample output saved to: %s", opts.sample)
	}

	if opts.databaseURL != "" {
		pool, err := db.ConnectPostgres(ctx, opts.databaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := menu.NewPostgresRepository(pool).Save(ctx, catalog); err != nil {
			return fmt.Errorf("save catalog to postgres: %w", err)
		}
		log.Printf("   🐘 Stored in PostgreSQL")
	}

	if opts.publishKey != "" {
		client, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		})
		if err != nil {
			return err
		}

		f, err := os.Open(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := client.Upload(ctx, opts.publishKey, f, "application/json")
		if err != nil {
			return fmt.Errorf("publish %s: %w", opts.publishKey, err)
		}
		log.Printf("   ☁️ Published to %s", url)
	}

	log.Println("🎉 Data conversion complete!")
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
