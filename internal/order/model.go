package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart entry. Name and base price are copied from the catalog
// when the line is added. Lines are never edited, only removed.
type Line struct {
	ItemID      string
	ItemName    string
	BasePrice   decimal.Decimal
	ModifierIDs []string
	Quantity    int
	ItemTotal   decimal.Decimal // base + modifiers, rounded
	Subtotal    decimal.Decimal // ItemTotal * Quantity
}

// Cart is a caller's running order. Total always equals the rounded sum of
// the line subtotals.
type Cart struct {
	SessionID string
	Lines     []Line
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Summary is a read-only view of a cart. CreatedAt is nil for a session
// the ledger does not know.
type Summary struct {
	SessionID string
	Lines     []Line
	Total     decimal.Decimal
	Count     int
	CreatedAt *time.Time
}

func (l Line) clone() Line {
	l.ModifierIDs = append([]string{}, l.ModifierIDs...)
	return l
}

func (c *Cart) clone() Cart {
	out := *c
	out.Lines = make([]Line, len(c.Lines))
	for i, l := range c.Lines {
		out.Lines[i] = l.clone()
	}
	return out
}
