package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/nutrition"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// NutritionRepository computes nutrition aggregates for the current user:
// per-recipe totals, daily progress against the user's goal, and weekly
// summaries.
type NutritionRepository struct {
	store *sqlite.Store
	sess  *session.Manager
}

// RecipeNutrition holds a recipe's total and per-serving nutrient values,
// summed over its joined ingredient rows.
type RecipeNutrition struct {
	RecipeID   int64
	Total      types.NutritionInfo
	PerServing types.NutritionInfo
}

// Goal returns the current user's goal row, falling back to the default
// targets when none is configured.
func (r *NutritionRepository) Goal() (types.NutritionGoal, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return types.NutritionGoal{}, err
	}

	g, err := r.store.NutritionGoals().Get(uid)
	if errors.Is(err, types.ErrNotFound) {
		return types.DefaultNutritionGoal(uid), nil
	}
	if err != nil {
		return types.NutritionGoal{}, err
	}
	return g, nil
}

// SetGoal writes the current user's goal row, replacing any existing one.
func (r *NutritionRepository) SetGoal(g types.NutritionGoal) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	if g.DailyCalories <= 0 {
		return fmt.Errorf("%w: daily calories must be positive", types.ErrValidation)
	}

	g.UserID = uid
	g.UpdatedAt = time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = g.UpdatedAt
	}
	return r.store.NutritionGoals().Upsert(g)
}

// ForRecipe sums a recipe's nutrient contributions over its ingredient
// rows and divides by its base servings.
func (r *NutritionRepository) ForRecipe(recipeID int64) (RecipeNutrition, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return RecipeNutrition{}, err
	}

	recipe, err := r.store.Recipes().Get(recipeID, uid)
	if err != nil {
		return RecipeNutrition{}, err
	}
	details, err := r.store.RecipeIngredients().ForRecipeWithDetails(recipeID)
	if err != nil {
		return RecipeNutrition{}, err
	}

	total := nutrition.RecipeTotal(details)
	return RecipeNutrition{
		RecipeID:   recipeID,
		Total:      total,
		PerServing: nutrition.PerServing(total, recipe.Servings),
	}, nil
}

// DailyProgress reports the current user's consumption on one date against
// their goal. Every meal planned that day contributes its recipe total
// scaled by planned over base servings.
func (r *NutritionRepository) DailyProgress(date string) (types.DailyNutritionProgress, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return types.DailyNutritionProgress{}, err
	}
	goal, err := r.Goal()
	if err != nil {
		return types.DailyNutritionProgress{}, err
	}

	consumed, _, err := r.consumedOn(uid, date)
	if err != nil {
		return types.DailyNutritionProgress{}, err
	}

	return types.DailyNutritionProgress{
		Date:     date,
		Goals:    goal,
		Consumed: consumed,
	}, nil
}

// consumedOn sums the contributions of every meal planned on one date and
// reports the meal count.
func (r *NutritionRepository) consumedOn(uid int64, date string) (types.NutritionInfo, int, error) {
	plans, err := r.store.MealPlans().ForDate(uid, date)
	if err != nil {
		return types.NutritionInfo{}, 0, err
	}

	var consumed types.NutritionInfo
	for _, plan := range plans {
		recipe, err := r.store.Recipes().Get(plan.RecipeID, uid)
		if errors.Is(err, types.ErrNotFound) {
			// A plan pointing at a deleted recipe contributes nothing.
			continue
		}
		if err != nil {
			return types.NutritionInfo{}, 0, err
		}
		details, err := r.store.RecipeIngredients().ForRecipeWithDetails(plan.RecipeID)
		if err != nil {
			return types.NutritionInfo{}, 0, err
		}
		total := nutrition.RecipeTotal(details)
		consumed = consumed.Add(nutrition.MealContribution(total, plan.Servings, recipe.Servings))
	}
	return consumed, len(plans), nil
}

// WeeklySummary returns one progress record per date with at least one
// planned meal in the seven days starting at startDate, sorted by date.
func (r *NutritionRepository) WeeklySummary(startDate string) ([]types.DailyNutritionProgress, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	dates, err := nutrition.WeekDates(startDate)
	if err != nil {
		return nil, err
	}
	goal, err := r.Goal()
	if err != nil {
		return nil, err
	}

	var summary []types.DailyNutritionProgress
	for _, date := range dates {
		consumed, meals, err := r.consumedOn(uid, date)
		if err != nil {
			return nil, err
		}
		if meals == 0 {
			continue
		}
		summary = append(summary, types.DailyNutritionProgress{
			Date:     date,
			Goals:    goal,
			Consumed: consumed,
		})
	}
	return summary, nil
}
