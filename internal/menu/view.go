package menu

// ItemView is the wire shape of a catalog item. Prices are plain numbers.
type ItemView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	BasePrice   float64       `json:"base_price"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	Modifiers   ModifiersView `json:"modifiers"`
}

type ModifiersView struct {
	Required []GroupView `json:"required"`
	Optional []GroupView `json:"optional"`
}

type GroupView struct {
	GroupName     string       `json:"group_name"`
	MaxSelections int          `json:"max_selections,omitempty"`
	Options       []OptionView `json:"options"`
}

type OptionView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// View converts an item to its wire shape.
func (it *Item) View() ItemView {
	return ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		BasePrice:   it.BasePrice.InexactFloat64(),
		Description: it.Description,
		Available:   it.Available,
		Modifiers: ModifiersView{
			Required: groupViews(it.Modifiers.Required),
			Optional: groupViews(it.Modifiers.Optional),
		},
	}
}

func groupViews(groups []ModifierGroup) []GroupView {
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		view := GroupView{GroupName: g.Name, MaxSelections: g.MaxSelections, Options: make([]OptionView, 0, len(g.Options))}
		for _, o := range g.Options {
			view.Options = append(view.Options, OptionView{ID: o.ID, Name: o.Name, Price: o.Price.InexactFloat64()})
		}
		out = append(out, view)
	}
	return out
}
