package model

// Built-in themes with their suggested dish sets. Events created
// without an explicit theme draft fall back to ThemeDefault.
var (
	ThemeClassic = Theme{ID: "classic", Name: "Classic Dinner", Icon: "🍽️", Gradient: "from-amber-200 to-orange-400"}
	ThemeItalian = Theme{ID: "italian", Name: "Italian Night", Icon: "🍝", Gradient: "from-green-200 to-red-300"}
	ThemeTaco    = Theme{ID: "taco", Name: "Taco Tuesday", Icon: "🌮", Gradient: "from-yellow-200 to-red-400"}
	ThemeBrunch  = Theme{ID: "brunch", Name: "Weekend Brunch", Icon: "🥞", Gradient: "from-pink-200 to-purple-300"}
	ThemeBBQ     = Theme{ID: "bbq", Name: "Backyard BBQ", Icon: "🍖", Gradient: "from-orange-300 to-red-500"}
)

// ThemeDefault is used when a draft names no theme
var ThemeDefault = ThemeClassic

// ThemeDishes returns the suggested dish stubs for a theme id.
// Unknown themes get the classic suggestions.
func ThemeDishes(themeID string) []DishStub {
	if stubs, ok := themeDishSets[themeID]; ok {
		return stubs
	}
	return themeDishSets[ThemeClassic.ID]
}

var themeDishSets = map[string][]DishStub{
	ThemeClassic.ID: {
		{Name: "Garden Salad", Category: DishAppetizers},
		{Name: "Roast Chicken", Category: DishMains},
		{Name: "Mashed Potatoes", Category: DishSides},
		{Name: "Apple Pie", Category: DishDesserts},
		{Name: "Sparkling Water", Category: DishDrinks},
	},
	ThemeItalian.ID: {
		{Name: "Bruschetta", Category: DishAppetizers},
		{Name: "Lasagna", Category: DishMains},
		{Name: "Garlic Bread", Category: DishSides},
		{Name: "Tiramisu", Category: DishDesserts},
		{Name: "Chianti", Category: DishDrinks},
	},
	ThemeTaco.ID: {
		{Name: "Chips & Guacamole", Category: DishAppetizers},
		{Name: "Carnitas", Category: DishMains},
		{Name: "Mexican Rice", Category: DishSides},
		{Name: "Churros", Category: DishDesserts},
		{Name: "Horchata", Category: DishDrinks},
	},
	ThemeBrunch.ID: {
		{Name: "Fruit Platter", Category: DishAppetizers},
		{Name: "Eggs Benedict", Category: DishMains},
		{Name: "Hash Browns", Category: DishSides},
		{Name: "Cinnamon Rolls", Category: DishDesserts},
		{Name: "Mimosas", Category: DishDrinks},
	},
	ThemeBBQ.ID: {
		{Name: "Deviled Eggs", Category: DishAppetizers},
		{Name: "Pulled Pork", Category: DishMains},
		{Name: "Coleslaw", Category: DishSides},
		{Name: "Peach Cobbler", Category: DishDesserts},
		{Name: "Lemonade", Category: DishDrinks},
	},
}
