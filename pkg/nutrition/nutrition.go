// Package nutrition computes nutrient aggregates over recipe and meal plan
// values: per-recipe totals from joined ingredient rows, serving scaling,
// and the date arithmetic behind weekly summaries.
package nutrition

import (
	"fmt"
	"time"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// DateLayout is the date format of meal plan rows.
const DateLayout = "2006-01-02"

// RecipeTotal sums the nutrient contributions of a recipe's joined
// ingredient rows.
func RecipeTotal(details []types.RecipeIngredientWithDetails) types.NutritionInfo {
	var total types.NutritionInfo
	for _, d := range details {
		total = total.Add(d.Nutrition())
	}
	return total
}

// PerServing divides a recipe total by its base serving count. A recipe
// with zero servings contributes nothing rather than dividing by zero.
func PerServing(total types.NutritionInfo, recipeServings int) types.NutritionInfo {
	if recipeServings <= 0 {
		return types.NutritionInfo{}
	}
	return total.Scale(1 / float64(recipeServings))
}

// MealContribution scales a recipe's total by planned servings over the
// recipe's base servings: a 4-serving recipe planned for 2 servings
// contributes half its total.
func MealContribution(total types.NutritionInfo, mealServings, recipeServings int) types.NutritionInfo {
	if recipeServings <= 0 || mealServings <= 0 {
		return types.NutritionInfo{}
	}
	return total.Scale(float64(mealServings) / float64(recipeServings))
}

// WeekDates returns the seven consecutive dates starting at start.
func WeekDates(start string) ([]string, error) {
	day, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", types.ErrValidation, start)
	}
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = day.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates, nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
