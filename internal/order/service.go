package order

import (
	"fmt"

	"menuvoice/internal/core"
	"menuvoice/internal/menu"

	"github.com/shopspring/decimal"
)

// Catalog is what the ledger needs from the menu: lookups and pricing.
type Catalog interface {
	Item(id string) (*menu.Item, bool)
	PriceOf(itemID string, modifierIDs []string) decimal.Decimal
}

type Service struct {
	catalog Catalog
	repo    Repository
}

func NewService(catalog Catalog, repo Repository) *Service {
	return &Service{catalog: catalog, repo: repo}
}

// EnsureSession returns sessionID when it is known, otherwise the id of a
// new empty cart. It never fails.
func (s *Service) EnsureSession(sessionID string) string {
	return s.repo.Ensure(sessionID)
}

// PriceOf is the unit price of an item with modifiers, rounded to cents.
// An unknown item prices at zero.
func (s *Service) PriceOf(itemID string, modifierIDs []string) decimal.Decimal {
	return s.catalog.PriceOf(itemID, modifierIDs)
}

// --------------------------------------------------
// ADD LINE
// --------------------------------------------------

// AddLine appends a priced line to the session's cart, creating the session
// when sessionID is empty or unknown. The item and every modifier id must
// exist in the catalog and quantity must be positive; these checks run
// before any session is touched.
func (s *Service) AddLine(sessionID, itemID string, modifierIDs []string, quantity int) (string, Line, decimal.Decimal, error) {
	if itemID == "" {
		return "", Line{}, decimal.Zero, fmt.Errorf("%w: item_id is required", core.ErrValidation)
	}

	item, ok := s.catalog.Item(itemID)
	if !ok {
		return "", Line{}, decimal.Zero, fmt.Errorf("%w: item %q", core.ErrNotFound, itemID)
	}

	for _, id := range modifierIDs {
		if _, ok := item.FindModifier(id); !ok {
			return "", Line{}, decimal.Zero, fmt.Errorf("%w: modifier %q for item %q", core.ErrNotFound, id, itemID)
		}
	}

	if quantity < 1 {
		return "", Line{}, decimal.Zero, fmt.Errorf("%w: quantity must be at least 1, got %d", core.ErrValidation, quantity)
	}

	unit := s.catalog.PriceOf(itemID, modifierIDs)
	line := Line{
		ItemID:      item.ID,
		ItemName:    item.Name,
		BasePrice:   item.BasePrice,
		ModifierIDs: append([]string{}, modifierIDs...),
		Quantity:    quantity,
		ItemTotal:   unit,
		Subtotal:    unit.Mul(decimal.NewFromInt(int64(quantity))),
	}

	var total decimal.Decimal
	id, err := s.repo.Update(sessionID, true, func(cart *Cart) error {
		cart.Lines = append(cart.Lines, line)
		cart.Total = cart.Total.Add(line.Subtotal).Round(2)
		total = cart.Total
		return nil
	})
	if err != nil {
		return "", Line{}, decimal.Zero, err
	}

	return id, line.clone(), total, nil
}

// --------------------------------------------------
// REMOVE LINE
// --------------------------------------------------

// RemoveLine deletes the line at index (0-based) and shifts later lines
// down. An unknown session is an error here, unlike Summarize and Clear.
func (s *Service) RemoveLine(sessionID string, index int) (Line, decimal.Decimal, error) {
	var (
		removed Line
		total   decimal.Decimal
	)

	_, err := s.repo.Update(sessionID, false, func(cart *Cart) error {
		if index < 0 {
			return fmt.Errorf("%w: valid item index is required, got %d", core.ErrValidation, index)
		}
		if index >= len(cart.Lines) {
			return fmt.Errorf("%w: item index %d out of range (%d items)", core.ErrValidation, index, len(cart.Lines))
		}

		removed = cart.Lines[index]
		cart.Lines = append(cart.Lines[:index], cart.Lines[index+1:]...)
		cart.Total = cart.Total.Sub(removed.Subtotal).Round(2)
		total = cart.Total
		return nil
	})
	if err != nil {
		return Line{}, decimal.Zero, err
	}

	return removed, total, nil
}

// --------------------------------------------------
// SUMMARY / CLEAR
// --------------------------------------------------

// Summarize returns the cart for sessionID. An empty or unknown id yields
// an empty summary rather than an error.
func (s *Service) Summarize(sessionID string) Summary {
	cart, ok := s.repo.Get(sessionID)
	if sessionID == "" || !ok {
		return Summary{Lines: []Line{}, Total: decimal.Zero}
	}

	created := cart.CreatedAt
	return Summary{
		SessionID: cart.SessionID,
		Lines:     cart.Lines,
		Total:     cart.Total,
		Count:     len(cart.Lines),
		CreatedAt: &created,
	}
}

// Clear drops the session and its cart. Clearing an unknown session is a
// no-op.
func (s *Service) Clear(sessionID string) {
	if sessionID == "" {
		return
	}
	s.repo.Delete(sessionID)
}
