// Package sqlite implements the file-backed store for the meal planner
// data layer: the version-6 schema, the migration chain that evolves older
// stores to it, and per-entity table accessors.
package sqlite

// Current schema version, tracked via PRAGMA user_version.
const schemaVersion = 6

// Schema DDL for all version-6 tables.
const (
	createUsers = `CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    daily_calorie_goal INTEGER,
    dietary_preferences TEXT,
    full_name TEXT NOT NULL DEFAULT ''
);`

	createRecipes = `CREATE TABLE recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    user_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    instructions TEXT NOT NULL,
    prep_time_minutes INTEGER NOT NULL,
    cook_time_minutes INTEGER NOT NULL,
    servings INTEGER NOT NULL,
    calories_per_serving INTEGER,
    category TEXT NOT NULL,
    difficulty_level TEXT NOT NULL,
    image_url TEXT,
    is_favorite INTEGER NOT NULL DEFAULT 0,
    rating REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createMealPlans = `CREATE TABLE meal_plans (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    user_id INTEGER NOT NULL DEFAULT 1,
    date TEXT NOT NULL,
    meal_type TEXT NOT NULL,
    recipe_id INTEGER NOT NULL,
    servings INTEGER NOT NULL,
    notes TEXT,
    created_at INTEGER NOT NULL
);`

	createGroceryItems = `CREATE TABLE grocery_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    user_id INTEGER NOT NULL DEFAULT 1,
    name TEXT NOT NULL,
    amount REAL NOT NULL,
    unit TEXT NOT NULL,
    category TEXT NOT NULL,
    is_checked INTEGER NOT NULL DEFAULT 0,
    added_date INTEGER NOT NULL,
    recipe_source_id INTEGER
);`

	createIngredients = `CREATE TABLE ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    default_unit TEXT NOT NULL,
    calories_per_100g REAL NOT NULL DEFAULT 0,
    protein_per_100g REAL NOT NULL DEFAULT 0,
    carbs_per_100g REAL NOT NULL DEFAULT 0,
    fat_per_100g REAL NOT NULL DEFAULT 0,
    fiber_per_100g REAL NOT NULL DEFAULT 0,
    sugar_per_100g REAL NOT NULL DEFAULT 0,
    sodium_per_100g REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createRecipeIngredients = `CREATE TABLE recipe_ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    recipe_id INTEGER NOT NULL,
    ingredient_id INTEGER NOT NULL,
    amount REAL NOT NULL,
    unit TEXT NOT NULL,
    notes TEXT,
    is_optional INTEGER NOT NULL DEFAULT 0,
    order_index INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (recipe_id) REFERENCES recipes (id) ON DELETE CASCADE,
    FOREIGN KEY (ingredient_id) REFERENCES ingredients (id) ON DELETE CASCADE
);`

	createNutritionGoals = `CREATE TABLE nutrition_goals (
    user_id INTEGER PRIMARY KEY NOT NULL,
    daily_calories REAL NOT NULL DEFAULT 2000,
    daily_protein REAL NOT NULL DEFAULT 150,
    daily_carbs REAL NOT NULL DEFAULT 250,
    daily_fat REAL NOT NULL DEFAULT 65,
    daily_fiber REAL NOT NULL DEFAULT 25,
    daily_sugar_limit REAL NOT NULL DEFAULT 50,
    daily_sodium_limit REAL NOT NULL DEFAULT 2300,
    activity_level TEXT NOT NULL DEFAULT 'moderate',
    goal_type TEXT NOT NULL DEFAULT 'maintain',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`
)

// Index DDL for common queries. Indexes are applied with IF NOT EXISTS so
// both fresh stores and migrated stores converge on the same set.
const (
	idxRecipesUser              = `CREATE INDEX IF NOT EXISTS idx_recipes_user ON recipes(user_id);`
	idxMealPlansUserDate        = `CREATE INDEX IF NOT EXISTS idx_meal_plans_user_date ON meal_plans(user_id, date);`
	idxGroceryItemsUser         = `CREATE INDEX IF NOT EXISTS idx_grocery_items_user ON grocery_items(user_id);`
	idxRecipeIngredientsRecipe  = `CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id);`
	idxRecipeIngredientsIngFKey = `CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient ON recipe_ingredients(ingredient_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createRecipes,
	createMealPlans,
	createGroceryItems,
	createIngredients,
	createRecipeIngredients,
	createNutritionGoals,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRecipesUser,
	idxMealPlansUserDate,
	idxGroceryItemsUser,
	idxRecipeIngredientsRecipe,
	idxRecipeIngredientsIngFKey,
}
