package types

import (
	"fmt"
	"strings"
	"time"
)

// RecipeIngredient links a recipe to a catalog ingredient with an amount.
// Rows cascade-delete with their recipe or ingredient. OrderIndex keeps
// display order contiguous per recipe.
type RecipeIngredient struct {
	ID           int64
	RecipeID     int64
	IngredientID int64
	Amount       float64
	Unit         string
	Notes        *string // preparation notes like "chopped", "diced"
	IsOptional   bool
	OrderIndex   int
}

// RecipeIngredientWithDetails joins a junction row with its catalog
// ingredient, as returned by the recipe ingredient queries.
type RecipeIngredientWithDetails struct {
	RecipeIngredient RecipeIngredient
	Ingredient       Ingredient
}

// DisplayText formats the row for list display, e.g. "2 cups Rice (rinsed)".
func (d RecipeIngredientWithDetails) DisplayText() string {
	amount := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", d.RecipeIngredient.Amount), "0"), ".")
	text := fmt.Sprintf("%s %s %s", amount, d.RecipeIngredient.Unit, d.Ingredient.Name)
	if d.RecipeIngredient.Notes != nil && strings.TrimSpace(*d.RecipeIngredient.Notes) != "" {
		text += " (" + *d.RecipeIngredient.Notes + ")"
	}
	return text
}

// Nutrition computes the nutrient contribution of this row's amount.
func (d RecipeIngredientWithDetails) Nutrition() NutritionInfo {
	return IngredientWithAmount{
		Ingredient: d.Ingredient,
		Amount:     d.RecipeIngredient.Amount,
		Unit:       d.RecipeIngredient.Unit,
	}.Nutrition()
}

// ToGroceryItem derives an unchecked grocery item carrying the ingredient's
// name and category, the junction row's amount and unit, and the source
// recipe for provenance.
func (d RecipeIngredientWithDetails) ToGroceryItem(userID int64) GroceryItem {
	recipeID := d.RecipeIngredient.RecipeID
	return GroceryItem{
		UserID:         userID,
		Name:           d.Ingredient.Name,
		Amount:         d.RecipeIngredient.Amount,
		Unit:           d.RecipeIngredient.Unit,
		Category:       d.Ingredient.Category,
		IsChecked:      false,
		AddedDate:      time.Now(),
		RecipeSourceID: &recipeID,
	}
}
