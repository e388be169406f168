package types

import "time"

// GroceryItem is a line on a user's shopping list. Items are created
// manually or derived from recipe ingredients when a recipe is scheduled;
// RecipeSourceID records the provenance of derived items.
type GroceryItem struct {
	ID             int64
	UserID         int64
	Name           string
	Amount         float64
	Unit           string
	Category       string
	IsChecked      bool
	AddedDate      time.Time
	RecipeSourceID *int64
}
