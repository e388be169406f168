package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToGrams(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		unit   string
		want   float64
	}{
		{"grams pass through", 200, "g", 200},
		{"gram word form", 50, "grams", 50},
		{"kilograms", 2, "kg", 2000},
		{"milliliters treated as grams", 150, "ml", 150},
		{"liters", 1.5, "l", 1500},
		{"cups", 2, "cup", 480},
		{"tablespoons", 3, "tbsp", 45},
		{"teaspoons", 2, "tsp", 10},
		{"pieces default to 100g each", 2, "piece", 200},
		{"items default to 100g each", 1, "item", 100},
		{"unknown unit falls back to 100g", 1.5, "handful", 150},
		{"unit match is case-insensitive", 1, "KG", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToGrams(tt.amount, tt.unit))
		})
	}
}

func TestIngredientWithAmount_Nutrition(t *testing.T) {
	chicken := Ingredient{
		Name:            "Chicken Breast",
		Category:        "Protein",
		DefaultUnit:     "g",
		CaloriesPer100g: 165,
		ProteinPer100g:  31,
		CarbsPer100g:    0,
		FatPer100g:      3.6,
		FiberPer100g:    0,
		SugarPer100g:    0,
		SodiumPer100g:   74,
	}

	t.Run("every field scales by grams/100", func(t *testing.T) {
		got := IngredientWithAmount{Ingredient: chicken, Amount: 200, Unit: "g"}.Nutrition()
		assert.InDelta(t, 330, got.Calories, 1e-9)
		assert.InDelta(t, 62, got.Protein, 1e-9)
		assert.InDelta(t, 0, got.Carbs, 1e-9)
		assert.InDelta(t, 7.2, got.Fat, 1e-9)
		assert.InDelta(t, 0, got.Fiber, 1e-9)
		assert.InDelta(t, 0, got.Sugar, 1e-9)
		assert.InDelta(t, 148, got.Sodium, 1e-9)
	})

	t.Run("unit conversion feeds the factor", func(t *testing.T) {
		got := IngredientWithAmount{Ingredient: chicken, Amount: 0.5, Unit: "kg"}.Nutrition()
		assert.InDelta(t, 825, got.Calories, 1e-9)
	})
}

func TestUser_Preferences(t *testing.T) {
	u := User{DietaryPreferences: "vegetarian, gluten-free ,"}
	assert.Equal(t, []string{"vegetarian", "gluten-free"}, u.Preferences())

	empty := User{}
	assert.Nil(t, empty.Preferences())
}
