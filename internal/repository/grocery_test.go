package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// ingredientRow stages one recipe ingredient for test recipes.
type ingredientRow struct {
	name   string
	amount float64
	unit   string
}

// addRecipeWithIngredients creates a recipe with the given rows,
// registering catalog entries as needed.
func addRecipeWithIngredients(t *testing.T, repos *Repositories, title string, servings int, rows []ingredientRow) int64 {
	t.Helper()

	var junction []types.RecipeIngredient
	for _, row := range rows {
		results, err := repos.Ingredients.Search(row.name)
		require.NoError(t, err)
		var ingID int64
		if len(results) > 0 {
			ingID = results[0].ID
		} else {
			ingID = addCatalogIngredient(t, repos, row.name, 100)
		}
		junction = append(junction, types.RecipeIngredient{
			IngredientID: ingID, Amount: row.amount, Unit: row.unit,
		})
	}

	rid, err := repos.Recipes.Create(types.Recipe{
		Title: title, Instructions: "Cook.", Servings: servings,
		Category: "Dinner", DifficultyLevel: types.DifficultyEasy,
	}, junction)
	require.NoError(t, err)
	return rid
}

func TestAddRecipePutsScaledIngredientsOnList(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "shopper")

	// 4-serving recipe, requested at 8 servings: amounts double.
	rid := addRecipeWithIngredients(t, repos, "Curry", 4, []ingredientRow{
		{"Onion", 200, "g"},
		{"Coconut Milk", 1, "cup"},
	})

	n, err := repos.Grocery.AddRecipe(rid, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := repos.Grocery.List()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]types.GroceryItem{}
	for _, item := range items {
		byName[item.Name] = item
	}
	assert.Equal(t, 400.0, byName["Onion"].Amount)
	assert.Equal(t, 2.0, byName["Coconut Milk"].Amount)
	assert.False(t, byName["Onion"].IsChecked)
	require.NotNil(t, byName["Onion"].RecipeSourceID)
	assert.Equal(t, rid, *byName["Onion"].RecipeSourceID)
}

func TestGenerateForRangeConsolidatesDuplicates(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "shopper")

	soup := addRecipeWithIngredients(t, repos, "Soup", 2, []ingredientRow{
		{"Onion", 100, "g"},
		{"Salt", 5, "g"},
	})
	stew := addRecipeWithIngredients(t, repos, "Stew", 2, []ingredientRow{
		{"Onion", 150, "g"},
	})

	_, err := repos.MealPlans.Plan("2024-06-01", "lunch", soup, 2, nil)
	require.NoError(t, err)
	_, err = repos.MealPlans.Plan("2024-06-02", "dinner", stew, 2, nil)
	require.NoError(t, err)

	n, err := repos.Grocery.GenerateForRange("2024-06-01", "2024-06-07", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "two onion rows merge into one")

	items, err := repos.Grocery.List()
	require.NoError(t, err)
	byName := map[string]types.GroceryItem{}
	for _, item := range items {
		byName[item.Name] = item
	}
	assert.Equal(t, 250.0, byName["Onion"].Amount)
	assert.Equal(t, 5.0, byName["Salt"].Amount)
}

func TestGenerateForRangeReplacesGeneratedKeepsManual(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "shopper")

	soup := addRecipeWithIngredients(t, repos, "Soup", 2, []ingredientRow{
		{"Onion", 100, "g"},
	})
	_, err := repos.MealPlans.Plan("2024-06-01", "lunch", soup, 2, nil)
	require.NoError(t, err)
	_, err = repos.Grocery.AddManual("Coffee", 1, "piece", "Other")
	require.NoError(t, err)

	// Generate twice with replacement: no double counting.
	_, err = repos.Grocery.GenerateForRange("2024-06-01", "2024-06-07", true)
	require.NoError(t, err)
	_, err = repos.Grocery.GenerateForRange("2024-06-01", "2024-06-07", true)
	require.NoError(t, err)

	items, err := repos.Grocery.List()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]types.GroceryItem{}
	for _, item := range items {
		byName[item.Name] = item
	}
	assert.Equal(t, 100.0, byName["Onion"].Amount)
	assert.Equal(t, 1.0, byName["Coffee"].Amount, "manual items survive regeneration")
}

func TestMarkPurchasedAndClearChecked(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "shopper")

	for _, name := range []string{"Milk", "Eggs", "Flour"} {
		_, err := repos.Grocery.AddManual(name, 1, "unit", "Other")
		require.NoError(t, err)
	}

	require.NoError(t, repos.Grocery.MarkPurchased([]string{"milk", "EGGS"}))

	unchecked, err := repos.Grocery.Unchecked()
	require.NoError(t, err)
	require.Len(t, unchecked, 1)
	assert.Equal(t, "Flour", unchecked[0].Name)

	require.NoError(t, repos.Grocery.ClearChecked())
	items, err := repos.Grocery.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestConsolidateKeepsDistinctUnitsApart(t *testing.T) {
	merged := consolidate([]types.GroceryItem{
		{Name: "Rice", Unit: "g", Amount: 100},
		{Name: "rice", Unit: "G", Amount: 50},
		{Name: "Rice", Unit: "cup", Amount: 1},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, 150.0, merged[0].Amount)
	assert.Equal(t, "cup", merged[1].Unit)
}
