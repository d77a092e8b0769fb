package menu

import "github.com/shopspring/decimal"

// Item is one orderable catalog entry. Immutable once the catalog is built.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
	Modifiers   Modifiers       `json:"modifiers"`
}

// Modifiers splits an item's modifier groups the way the POS export does.
type Modifiers struct {
	Required []ModifierGroup `json:"required"`
	Optional []ModifierGroup `json:"optional"`
}

// ModifierGroup is a named set of options. MaxSelections is 0 when the
// group name carries no "Choose Up To N" limit.
type ModifierGroup struct {
	Name          string           `json:"group_name"`
	MaxSelections int              `json:"max_selections,omitempty"`
	Options       []ModifierOption `json:"options"`
}

type ModifierOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Groups returns required groups followed by optional groups.
// This is the scan order used for modifier lookup.
func (m Modifiers) Groups() []ModifierGroup {
	groups := make([]ModifierGroup, 0, len(m.Required)+len(m.Optional))
	groups = append(groups, m.Required...)
	return append(groups, m.Optional...)
}

// FindModifier returns the first option with the given id across all of
// the item's groups. Modifier ids are only unique within an item.
func (it *Item) FindModifier(id string) (ModifierOption, bool) {
	for _, group := range it.Modifiers.Groups() {
		for _, option := range group.Options {
			if option.ID == id {
				return option, true
			}
		}
	}
	return ModifierOption{}, false
}
