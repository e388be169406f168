package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seedLegacyStore creates a database file in dir and runs the given
// statements against it, so tests can stage old schema shapes by hand.
func seedLegacyStore(t *testing.T, dir string, stmts []string) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dir, DatabaseFileName))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())
}

// tableColumns returns the column names of a table.
func tableColumns(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestLegacyV1StoreMigratesToCurrent(t *testing.T) {
	dir := t.TempDir()
	// Version-1 shape: camelCase keys, plaintext passwords, free-text
	// grocery quantities, meal plans without meal types. No version marker.
	seedLegacyStore(t, dir, []string{
		`CREATE TABLE users (userId INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT NOT NULL, password TEXT NOT NULL)`,
		`INSERT INTO users (userId, username, password) VALUES (7, 'walid', 'hunter2')`,
		`CREATE TABLE recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL, description TEXT, ingredients TEXT NOT NULL, instructions TEXT NOT NULL,
			prep_time_minutes INTEGER NOT NULL, cook_time_minutes INTEGER NOT NULL, servings INTEGER NOT NULL,
			calories_per_serving INTEGER, category TEXT NOT NULL, difficulty_level TEXT NOT NULL,
			image_url TEXT, is_favorite INTEGER NOT NULL DEFAULT 0, rating REAL NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL, updated_at INTEGER NOT NULL)`,
		`INSERT INTO recipes (title, description, ingredients, instructions, prep_time_minutes,
			cook_time_minutes, servings, category, difficulty_level, created_at, updated_at)
			VALUES ('Pasta', NULL, 'pasta, sauce', 'Boil.', 5, 15, 2, 'Dinner', 'Easy', 1000, 1000)`,
		`CREATE TABLE meal_plans (planId INTEGER PRIMARY KEY AUTOINCREMENT, day TEXT NOT NULL, recipeId INTEGER NOT NULL)`,
		`INSERT INTO meal_plans (day, recipeId) VALUES ('2024-03-01', 1)`,
		`CREATE TABLE grocery_items (itemId INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, quantity TEXT NOT NULL, acquired INTEGER NOT NULL DEFAULT 0)`,
		`INSERT INTO grocery_items (name, quantity, acquired) VALUES ('Tomatoes', '2.5', 1)`,
	})

	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	v, err := s.userVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	// users: password carried into password_hash, email synthesized empty.
	u, err := s.Users().Get(7)
	require.NoError(t, err)
	assert.Equal(t, "walid", u.Username)
	assert.Equal(t, "hunter2", u.PasswordHash)
	assert.Equal(t, "", u.Email)
	assert.Equal(t, "", u.FullName)

	// recipes: scoped to the placeholder user, free-text ingredients gone.
	recipes, err := s.Recipes().ListByUser(placeholderUserID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pasta", recipes[0].Title)
	assert.NotContains(t, tableColumns(t, s, "recipes"), "ingredients")

	// meal plans: meal type synthesized as Unknown, one serving.
	plans, err := s.MealPlans().ForDate(placeholderUserID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Unknown", plans[0].MealType)
	assert.Equal(t, int64(1), plans[0].RecipeID)
	assert.Equal(t, 1, plans[0].Servings)

	// grocery items: quantity cast to a number, acquired becomes checked.
	items, err := s.GroceryItems().ListByUser(placeholderUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tomatoes", items[0].Name)
	assert.Equal(t, 2.5, items[0].Amount)
	assert.Equal(t, "unit", items[0].Unit)
	assert.Equal(t, "Other", items[0].Category)
	assert.True(t, items[0].IsChecked)

	// nutrition tables appear with the starter catalog seeded.
	count, err := s.Ingredients().Count()
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestV5StoreKeepsRecipesThroughColumnDrop(t *testing.T) {
	dir := t.TempDir()
	seedLegacyStore(t, dir, []string{
		createUsers,
		createRecipesV2,
		createMealPlans,
		createGroceryItems,
		createIngredients,
		createRecipeIngredients,
		createNutritionGoals,
		`INSERT INTO recipes (user_id, title, description, ingredients, instructions, prep_time_minutes,
			cook_time_minutes, servings, category, difficulty_level, created_at, updated_at)
			VALUES (1, 'Soup', 'warm', 'water, salt', 'Simmer.', 10, 30, 4, 'Dinner', 'Easy', 1000, 1000)`,
		`INSERT INTO recipes (user_id, title, description, ingredients, instructions, prep_time_minutes,
			cook_time_minutes, servings, category, difficulty_level, created_at, updated_at)
			VALUES (1, 'Salad', NULL, 'greens', 'Toss.', 5, 0, 2, 'Lunch', 'Easy', 2000, 2000)`,
		`PRAGMA user_version = 5`,
	})

	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	v, err := s.userVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	recipes, err := s.Recipes().ListByUser(1)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	titles := []string{recipes[0].Title, recipes[1].Title}
	assert.ElementsMatch(t, []string{"Soup", "Salad"}, titles)
	assert.NotContains(t, tableColumns(t, s, "recipes"), "ingredients")
}

func TestV3StoreGainsNutritionTables(t *testing.T) {
	dir := t.TempDir()
	seedLegacyStore(t, dir, []string{
		createUsers,
		createRecipesV2,
		createMealPlans,
		createGroceryItems,
		`PRAGMA user_version = 3`,
	})

	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Ingredients().Count()
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	has, err := s.NutritionGoals().Has(1)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUnreachableVersionTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	seedLegacyStore(t, dir, []string{
		`CREATE TABLE leftovers (id INTEGER PRIMARY KEY, data TEXT)`,
		`INSERT INTO leftovers (data) VALUES ('stale')`,
		`PRAGMA user_version = 99`,
	})

	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	v, err := s.userVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	// Old tables are gone, the current schema is in place and seeded.
	var count int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'leftovers'").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)

	seeded, err := s.Ingredients().Count()
	require.NoError(t, err)
	assert.Equal(t, 10, seeded)
}

func TestCurrentVersionStoreOpensWithoutChanges(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	id, err := s.Users().Insert(mustUser("ana"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	u, err := s.Users().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
}
