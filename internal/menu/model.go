package menu

// Category groups item ids in catalog order.
type Category struct {
	Name    string   `json:"name"`
	ItemIDs []string `json:"item_ids"`
}

// CategorySummary is what the category listing exposes.
type CategorySummary struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// Metadata describes a catalog snapshot. GeneratedAt is kept as text
// because older exports wrote local ISO timestamps without a zone.
type Metadata struct {
	TotalItems      int    `json:"total_items"`
	TotalCategories int    `json:"total_categories"`
	GeneratedAt     string `json:"generated_at"`
}
