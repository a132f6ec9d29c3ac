package model

// Item represents a non-food contribution ("things to bring").
// Items live only in the local cache; there is no remote table for them.
type Item struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	AssignedTo  string `json:"assigned_to,omitempty"` // guest id, empty when unclaimed
}

// Item categories
const (
	ItemSupplies    = "supplies"
	ItemUtensils    = "utensils"
	ItemDecorations = "decorations"
	ItemDrinks      = "drinks"
	ItemOther       = "other"
)

// ItemCategories lists every item category in display order
var ItemCategories = []string{ItemSupplies, ItemUtensils, ItemDecorations, ItemDrinks, ItemOther}

// ItemDraft carries the host-supplied fields for a new item
type ItemDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity,omitempty"`
}

// ValidItemCategory reports whether c is a recognized item category
func ValidItemCategory(c string) bool {
	for _, v := range ItemCategories {
		if v == c {
			return true
		}
	}
	return false
}
