package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"menuvoice/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Catalog sources.
const (
	SourceFile     = "file"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceR2       = "r2"
)

type Config struct {
	Env  string
	Port string

	CatalogSource string
	CatalogPath   string

	DatabaseURL string
	R2          storage.R2Config

	SearchThreshold float64
	SearchLimit     int

	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool { return c.Env == "production" }

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// Load reads .env (outside production), then the environment, then the
// command-line flags in args. Flags win over env. A --help request
// returns pflag.ErrHelp.
func Load(args []string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("api", pflag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	fs.StringVar(&cfg.CatalogSource, "catalog-source", cfg.CatalogSource, "catalog source: file, csv, postgres or r2")
	fs.StringVar(&cfg.CatalogPath, "catalog-path", cfg.CatalogPath, "menu JSON file, CSV directory or R2 object key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "5000"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPath:   getEnv("CATALOG_PATH", "menu_data.json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		R2: storage.R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		},
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.SearchThreshold, err = strconv.ParseFloat(getEnv("SEARCH_THRESHOLD", "0.6"), 64); err != nil {
		return nil, fmt.Errorf("SEARCH_THRESHOLD: %w", err)
	}
	if cfg.SearchLimit, err = strconv.Atoi(getEnv("SEARCH_LIMIT", "5")); err != nil {
		return nil, fmt.Errorf("SEARCH_LIMIT: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that the settings the chosen catalog source needs are
// present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is empty")
	}
	if c.SearchThreshold <= 0 || c.SearchThreshold > 1 {
		return fmt.Errorf("SEARCH_THRESHOLD must be in (0, 1], got %v", c.SearchThreshold)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}

	var required []string
	switch c.CatalogSource {
	case SourceFile, SourceCSV:
		if c.CatalogPath == "" {
			required = append(required, "CATALOG_PATH")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			required = append(required, "DATABASE_URL")
		}
	case SourceR2:
		for k, v := range map[string]string{
			"R2_ENDPOINT":    c.R2.Endpoint,
			"R2_ACCESS_KEY":  c.R2.AccessKey,
			"R2_SECRET_KEY":  c.R2.SecretKey,
			"R2_BUCKET_NAME": c.R2.Bucket,
			"CATALOG_PATH":   c.CatalogPath,
		} {
			if v == "" {
				required = append(required, k)
			}
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	if len(required) > 0 {
		sort.Strings(required)
		return fmt.Errorf("missing env var: %s", strings.Join(required, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
