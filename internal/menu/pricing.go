package menu

import "github.com/shopspring/decimal"

// UnitPrice is the base price plus the price of each requested modifier,
// rounded to cents. Each id is resolved once, first match wins, so an id
// repeated across groups is not charged twice. Unknown ids add nothing.
// PURE business logic (no session state)
func (it *Item) UnitPrice(modifierIDs []string) decimal.Decimal {
	total := it.BasePrice
	for _, id := range modifierIDs {
		if option, ok := it.FindModifier(id); ok {
			total = total.Add(option.Price)
		}
	}
	return total.Round(2)
}

// PriceOf prices an item by id. An unknown item prices at zero; callers
// that need a hard failure check Item first.
func (c *Catalog) PriceOf(itemID string, modifierIDs []string) decimal.Decimal {
	item, ok := c.Item(itemID)
	if !ok {
		return decimal.Zero
	}
	return item.UnitPrice(modifierIDs)
}
