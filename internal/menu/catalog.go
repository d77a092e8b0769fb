package menu

import (
	"fmt"
	"strings"

	"menuvoice/internal/core"
)

// Catalog is the read-only menu snapshot shared by search and ordering.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	items      map[string]*Item
	order      []string
	categories []Category
	byCategory map[string]int // lower-cased name -> index into categories
}

// New validates items and assembles the catalog. Item order is kept as
// given and is the tie-break order for search ranking. When categories is
// empty they are derived from the items in order of first appearance.
func New(items []Item, categories []Category) (*Catalog, error) {
	c := &Catalog{
		items:      make(map[string]*Item, len(items)),
		order:      make([]string, 0, len(items)),
		byCategory: make(map[string]int),
	}

	for i := range items {
		item := items[i]
		if err := validateItem(&item); err != nil {
			return nil, err
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", core.ErrValidation, item.ID)
		}
		c.items[item.ID] = &item
		c.order = append(c.order, item.ID)
	}

	if len(categories) == 0 {
		categories = deriveCategories(items)
	}

	for _, cat := range categories {
		key := strings.ToLower(cat.Name)
		if cat.Name == "" {
			return nil, fmt.Errorf("%w: category name is empty", core.ErrValidation)
		}
		if _, dup := c.byCategory[key]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", core.ErrValidation, cat.Name)
		}
		for _, id := range cat.ItemIDs {
			if _, ok := c.items[id]; !ok {
				return nil, fmt.Errorf("%w: category %q references unknown item %q", core.ErrValidation, cat.Name, id)
			}
		}
		ids := append([]string(nil), cat.ItemIDs...)
		c.byCategory[key] = len(c.categories)
		c.categories = append(c.categories, Category{Name: cat.Name, ItemIDs: ids})
	}

	return c, nil
}

func deriveCategories(items []Item) []Category {
	var categories []Category
	index := map[string]int{}

	for _, item := range items {
		if item.Category == "" {
			continue
		}
		i, ok := index[item.Category]
		if !ok {
			i = len(categories)
			index[item.Category] = i
			categories = append(categories, Category{Name: item.Category})
		}
		categories[i].ItemIDs = append(categories[i].ItemIDs, item.ID)
	}
	return categories
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns all items in catalog order. The pointers are shared and
// must be treated as read-only.
func (c *Catalog) Items() []*Item {
	out := make([]*Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len is the number of items.
func (c *Catalog) Len() int { return len(c.order) }

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category finds a category by name, ignoring case.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.byCategory[strings.ToLower(name)]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// CategoryNames lists category names in catalog order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}
