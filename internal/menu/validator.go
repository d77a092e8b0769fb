package menu

import (
	"fmt"
	"strings"

	"menuvoice/internal/core"
)

// validateItem rejects records the pricing and search code cannot trust.
func validateItem(item *Item) error {
	if item.ID == "" {
		return fmt.Errorf("%w: item id is empty (name %q)", core.ErrValidation, item.Name)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: item %q has no name", core.ErrValidation, item.ID)
	}
	if item.BasePrice.IsNegative() {
		return fmt.Errorf("%w: item %q has negative base price %s", core.ErrValidation, item.ID, item.BasePrice)
	}

	for _, group := range item.Modifiers.Groups() {
		if group.MaxSelections < 0 {
			return fmt.Errorf("%w: item %q group %q has negative max selections", core.ErrValidation, item.ID, group.Name)
		}
		seen := map[string]bool{}
		for _, option := range group.Options {
			if option.ID == "" {
				return fmt.Errorf("%w: item %q group %q has an option without id", core.ErrValidation, item.ID, group.Name)
			}
			if seen[option.ID] {
				return fmt.Errorf("%w: item %q group %q repeats option %q", core.ErrValidation, item.ID, group.Name, option.ID)
			}
			seen[option.ID] = true
			if option.Price.IsNegative() {
				return fmt.Errorf("%w: item %q option %q has negative price", core.ErrValidation, item.ID, option.ID)
			}
		}
	}

	return nil
}
