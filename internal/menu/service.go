package menu

import (
	"fmt"
	"strings"

	"menuvoice/internal/core"
)

// Service answers read-only browse questions about the loaded catalog.
type Service struct {
	catalog *Catalog
}

func NewService(catalog *Catalog) *Service {
	return &Service{catalog: catalog}
}

// Catalog exposes the underlying snapshot for the search and order services.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// --------------------------------------------------
// Categories with item counts, catalog order
// --------------------------------------------------
func (s *Service) ListCategories() []CategorySummary {
	categories := s.catalog.Categories()
	out := make([]CategorySummary, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategorySummary{Name: cat.Name, ItemCount: len(cat.ItemIDs)})
	}
	return out
}

// --------------------------------------------------
// Items of one category (case-insensitive name)
// --------------------------------------------------
func (s *Service) ItemsByCategory(name string) (Category, []*Item, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, nil, fmt.Errorf("%w: category name is required", core.ErrValidation)
	}

	cat, ok := s.catalog.Category(name)
	if !ok {
		return Category{}, nil, fmt.Errorf("%w: category %q", core.ErrNotFound, name)
	}

	items := make([]*Item, 0, len(cat.ItemIDs))
	for _, id := range cat.ItemIDs {
		if item, ok := s.catalog.Item(id); ok {
			items = append(items, item)
		}
	}
	return cat, items, nil
}

// --------------------------------------------------
// Full record of one item
// --------------------------------------------------
func (s *Service) ItemDetails(id string) (*Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: item id is required", core.ErrValidation)
	}

	item, ok := s.catalog.Item(id)
	if !ok {
		return nil, fmt.Errorf("%w: item with id %q", core.ErrNotFound, id)
	}
	return item, nil
}

// Stats reports catalog size for the health endpoint.
func (s *Service) Stats() (items, categories int) {
	return s.catalog.Len(), len(s.catalog.categories)
}
