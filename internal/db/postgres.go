package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pool, pings it and makes sure the menu schema
// exists. Only catalog data lives in PostgreSQL; carts stay in memory.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the catalog tables
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	// -------------------------------
	// CATEGORIES
	// -------------------------------
	categoriesSQL := `
		CREATE TABLE IF NOT EXISTS menu_categories (
			name VARCHAR(255) PRIMARY KEY,
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, categoriesSQL); err != nil {
		return err
	}

	// -------------------------------
	// ITEMS
	// -------------------------------
	itemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(500) NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT '',
			base_price NUMERIC(10,2) NOT NULL CHECK (base_price >= 0),
			description TEXT NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, itemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// MODIFIER GROUPS + OPTIONS
	// -------------------------------
	modifiersSQL := `
		CREATE TABLE IF NOT EXISTS menu_modifier_groups (
			id SERIAL PRIMARY KEY,
			item_id VARCHAR(255) NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			name VARCHAR(500) NOT NULL,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			max_selections INT NOT NULL DEFAULT 0,
			position INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS menu_modifier_options (
			group_id INT NOT NULL REFERENCES menu_modifier_groups(id) ON DELETE CASCADE,
			option_id VARCHAR(255) NOT NULL,
			name VARCHAR(500) NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			position INT NOT NULL DEFAULT 0,
			PRIMARY KEY (group_id, option_id)
		);
	`
	if _, err := db.Exec(ctx, modifiersSQL); err != nil {
		return err
	}

	return nil
}
