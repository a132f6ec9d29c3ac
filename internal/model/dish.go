package model

// Dish represents a food contribution a guest can claim to bring
type Dish struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Custom      bool   `json:"custom"` // added ad hoc rather than from the theme's suggestions
	AssignedTo  string `json:"assigned_to,omitempty"` // guest id, empty when unclaimed
}

// Dish categories
const (
	DishAppetizers = "appetizers"
	DishMains      = "mains"
	DishSides      = "sides"
	DishDesserts   = "desserts"
	DishDrinks     = "drinks"
)

// DishCategories lists every dish category in display order
var DishCategories = []string{DishAppetizers, DishMains, DishSides, DishDesserts, DishDrinks}

// ValidDishCategory reports whether c is a recognized dish category
func ValidDishCategory(c string) bool {
	for _, v := range DishCategories {
		if v == c {
			return true
		}
	}
	return false
}

// DishStub is the reduced dish shape carried by templates and event
// drafts: what to make, not who makes it.
type DishStub struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

// Stub reduces a dish to its template form
func (d Dish) Stub() DishStub {
	return DishStub{Name: d.Name, Description: d.Description, Category: d.Category}
}
