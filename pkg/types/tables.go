package types

// Standard table names of the version-6 schema.
const (
	TableUsers             = "users"
	TableRecipes           = "recipes"
	TableIngredients       = "ingredients"
	TableRecipeIngredients = "recipe_ingredients"
	TableMealPlans         = "meal_plans"
	TableGroceryItems      = "grocery_items"
	TableNutritionGoals    = "nutrition_goals"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableUsers,
	TableRecipes,
	TableIngredients,
	TableRecipeIngredients,
	TableMealPlans,
	TableGroceryItems,
	TableNutritionGoals,
}
