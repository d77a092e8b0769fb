package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// Repository defines where a catalog snapshot is loaded from and saved to.
type Repository interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, c *Catalog) error
}

// ObjectStore is the subset of an object bucket the catalog needs.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectRepository keeps a menu_data.json snapshot under one object key.
type ObjectRepository struct {
	store ObjectStore
	key   string
	now   func() time.Time
}

func NewObjectRepository(store ObjectStore, key string) *ObjectRepository {
	return &ObjectRepository{store: store, key: key, now: time.Now}
}

func (r *ObjectRepository) Load(ctx context.Context) (*Catalog, error) {
	data, err := r.store.Download(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", r.key, err)
	}
	return ReadDocument(bytes.NewReader(data))
}

func (r *ObjectRepository) Save(ctx context.Context, c *Catalog) error {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, c, r.now()); err != nil {
		return err
	}
	if _, err := r.store.Upload(ctx, r.key, &buf, "application/json"); err != nil {
		return fmt.Errorf("upload %s: %w", r.key, err)
	}
	return nil
}
