package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

func TestGoalDefaultsWhenUnset(t *testing.T) {
	repos := newTestRepos(t)
	u := registerAndLogin(t, repos, "athlete")

	g, err := repos.Nutrition.Goal()
	require.NoError(t, err)
	assert.Equal(t, u.ID, g.UserID)
	assert.Equal(t, 2000.0, g.DailyCalories)
	assert.Equal(t, "maintain", g.GoalType)
}

func TestSetGoalReplacesExisting(t *testing.T) {
	repos := newTestRepos(t)
	u := registerAndLogin(t, repos, "athlete")

	g := types.DefaultNutritionGoal(u.ID)
	g.DailyCalories = 2600
	require.NoError(t, repos.Nutrition.SetGoal(g))

	g.DailyCalories = 1800
	require.NoError(t, repos.Nutrition.SetGoal(g))

	got, err := repos.Nutrition.Goal()
	require.NoError(t, err)
	assert.Equal(t, 1800.0, got.DailyCalories)

	assert.ErrorIs(t, repos.Nutrition.SetGoal(types.NutritionGoal{}), types.ErrValidation)
}

func TestForRecipeSumsJoinedRows(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "cook")

	// 300 g at 130 kcal/100g plus 100 g at 40 kcal/100g = 430 kcal.
	rice := addCatalogIngredient(t, repos, "White Rice", 130)
	onion := addCatalogIngredient(t, repos, "Red Onion", 40)

	rid, err := repos.Recipes.Create(types.Recipe{
		Title: "Rice Bowl", Instructions: "Cook.", Servings: 2,
		Category: "Dinner", DifficultyLevel: types.DifficultyEasy,
	}, []types.RecipeIngredient{
		{IngredientID: rice, Amount: 300, Unit: "g"},
		{IngredientID: onion, Amount: 100, Unit: "g"},
	})
	require.NoError(t, err)

	n, err := repos.Nutrition.ForRecipe(rid)
	require.NoError(t, err)
	assert.InDelta(t, 430, n.Total.Calories, 1e-9)
	assert.InDelta(t, 215, n.PerServing.Calories, 1e-9)
}

func TestDailyProgressScalesByPlannedServings(t *testing.T) {
	repos := newTestRepos(t)
	u := registerAndLogin(t, repos, "athlete")

	rice := addCatalogIngredient(t, repos, "White Rice", 130)
	rid, err := repos.Recipes.Create(types.Recipe{
		Title: "Rice Bowl", Instructions: "Cook.", Servings: 4,
		Category: "Dinner", DifficultyLevel: types.DifficultyEasy,
	}, []types.RecipeIngredient{
		{IngredientID: rice, Amount: 400, Unit: "g"}, // 520 kcal total
	})
	require.NoError(t, err)

	// Two of four servings planned: half the recipe total.
	_, err = repos.MealPlans.Plan("2024-06-01", "dinner", rid, 2, nil)
	require.NoError(t, err)

	goal := types.DefaultNutritionGoal(u.ID)
	goal.DailyCalories = 520
	require.NoError(t, repos.Nutrition.SetGoal(goal))

	p, err := repos.Nutrition.DailyProgress("2024-06-01")
	require.NoError(t, err)
	assert.InDelta(t, 260, p.Consumed.Calories, 1e-9)
	assert.InDelta(t, 50, p.CaloriesPercentage(), 1e-9)
	assert.Equal(t, types.StatusUnderTarget, p.OverallStatus())
	assert.InDelta(t, 260, p.Remaining().Calories, 1e-9)
}

func TestDailyProgressSkipsDeletedRecipes(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "athlete")

	rice := addCatalogIngredient(t, repos, "White Rice", 130)
	rid, err := repos.Recipes.Create(types.Recipe{
		Title: "Rice Bowl", Instructions: "Cook.", Servings: 2,
		Category: "Dinner", DifficultyLevel: types.DifficultyEasy,
	}, []types.RecipeIngredient{
		{IngredientID: rice, Amount: 200, Unit: "g"},
	})
	require.NoError(t, err)
	_, err = repos.MealPlans.Plan("2024-06-01", "dinner", rid, 2, nil)
	require.NoError(t, err)

	require.NoError(t, repos.Recipes.Delete(rid))

	p, err := repos.Nutrition.DailyProgress("2024-06-01")
	require.NoError(t, err)
	assert.Zero(t, p.Consumed.Calories)
}

func TestWeeklySummaryOnlyDatesWithMeals(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "athlete")

	rice := addCatalogIngredient(t, repos, "White Rice", 130)
	rid, err := repos.Recipes.Create(types.Recipe{
		Title: "Rice Bowl", Instructions: "Cook.", Servings: 2,
		Category: "Dinner", DifficultyLevel: types.DifficultyEasy,
	}, []types.RecipeIngredient{
		{IngredientID: rice, Amount: 200, Unit: "g"},
	})
	require.NoError(t, err)

	// Meals on two of the seven days, inserted out of order.
	_, err = repos.MealPlans.Plan("2024-06-05", "dinner", rid, 2, nil)
	require.NoError(t, err)
	_, err = repos.MealPlans.Plan("2024-06-02", "lunch", rid, 2, nil)
	require.NoError(t, err)
	// And one outside the window.
	_, err = repos.MealPlans.Plan("2024-06-09", "lunch", rid, 2, nil)
	require.NoError(t, err)

	summary, err := repos.Nutrition.WeeklySummary("2024-06-01")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "2024-06-02", summary[0].Date)
	assert.Equal(t, "2024-06-05", summary[1].Date)
	assert.InDelta(t, 260, summary[0].Consumed.Calories, 1e-9)
}

func TestNutritionRequiresLogin(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Nutrition.Goal()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	_, err = repos.Nutrition.DailyProgress("2024-06-01")
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
}
