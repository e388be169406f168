package types

import (
	"strings"
	"time"
)

// Ingredient is a catalog entry shared by all users. Nutrient fields are
// per 100 g (or 100 ml for liquids); sodium is in mg.
type Ingredient struct {
	ID              int64
	Name            string
	Category        string // Vegetables, Fruits, Protein, Grains, Dairy, ...
	DefaultUnit     string // g, ml, cup, piece, ...
	CaloriesPer100g float64
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatPer100g      float64
	FiberPer100g    float64
	SugarPer100g    float64
	SodiumPer100g   float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToGrams converts an amount in the given unit to grams using a fixed,
// deliberately coarse lookup. Volume units are treated as gram-equivalent
// (1 ml = 1 g); countable units and anything unrecognized fall back to
// 100 g apiece. Unit names match case-insensitively.
func ToGrams(amount float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "g", "gram", "grams":
		return amount
	case "kg", "kilogram", "kilograms":
		return amount * 1000
	case "ml", "milliliter", "milliliters":
		return amount
	case "l", "liter", "liters":
		return amount * 1000
	case "cup", "cups":
		return amount * 240
	case "tbsp", "tablespoon", "tablespoons":
		return amount * 15
	case "tsp", "teaspoon", "teaspoons":
		return amount * 5
	case "piece", "pieces", "item", "items":
		return amount * 100
	default:
		return amount * 100
	}
}

// IngredientWithAmount is a quantity of an ingredient in an arbitrary
// unit, as it appears in recipes and grocery lists.
type IngredientWithAmount struct {
	Ingredient Ingredient
	Amount     float64
	Unit       string
}

// Nutrition scales the ingredient's per-100g nutrient values by the
// gram-equivalent of the amount.
func (iw IngredientWithAmount) Nutrition() NutritionInfo {
	factor := ToGrams(iw.Amount, iw.Unit) / 100
	return NutritionInfo{
		Calories: iw.Ingredient.CaloriesPer100g * factor,
		Protein:  iw.Ingredient.ProteinPer100g * factor,
		Carbs:    iw.Ingredient.CarbsPer100g * factor,
		Fat:      iw.Ingredient.FatPer100g * factor,
		Fiber:    iw.Ingredient.FiberPer100g * factor,
		Sugar:    iw.Ingredient.SugarPer100g * factor,
		Sodium:   iw.Ingredient.SodiumPer100g * factor,
	}
}
