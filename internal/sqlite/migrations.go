package sqlite

// This file implements the schema migration chain. Each step is a fully
// self-contained, one-directional transformation applied in strict
// ascending version order. Steps catch their own failures and degrade to
// creating an empty table of the new shape; the chain itself never aborts.
// A store whose version marker cannot be reached through the chain is
// destroyed and recreated rather than left inconsistent.

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Intermediate DDL shapes used by individual steps.
const (
	// users as of version 2: no full_name column yet (added in 2→3).
	createUsersV2 = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    daily_calorie_goal INTEGER,
    dietary_preferences TEXT
);`

	// recipes as of version 2: still carries the free-text ingredients
	// column (dropped in 5→6).
	createRecipesV2 = `CREATE TABLE recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    user_id INTEGER NOT NULL DEFAULT 1,
    title TEXT NOT NULL,
    description TEXT,
    ingredients TEXT NOT NULL,
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
)

// placeholderUserID retroactively scopes rows that predate per-user
// ownership to a fixed user.
const placeholderUserID = 1

// migrationStep is one link in the chain. apply never returns an error;
// failures degrade inside the step.
type migrationStep struct {
	from, to int
	apply    func(db *sql.DB, log *zap.Logger)
}

// migrationChain lists all steps in ascending version order.
var migrationChain = []migrationStep{
	{1, 2, migrate1to2},
	{2, 3, migrate2to3},
	{3, 4, migrate3to4},
	{4, 5, migrate4to5},
	{5, 6, migrate5to6},
}

// migrate brings the store schema to the current version. A fresh file is
// created at version 6 directly; a file with tables but no version marker
// is treated as the legacy version-1 shape; an unreachable version marker
// triggers the destructive rebuild fallback.
func (s *Store) migrate() error {
	version, err := s.userVersion()
	if err != nil {
		return err
	}

	if version == 0 {
		legacy, err := s.hasAnyTable()
		if err != nil {
			return err
		}
		if !legacy {
			return s.createFresh()
		}
		version = 1
	}

	if version == schemaVersion {
		return s.ensureIndexes()
	}

	if version < 0 || version > schemaVersion {
		s.log.Warn("schema version unreachable by migration chain, rebuilding store",
			zap.Int("version", version),
			zap.Int("current", schemaVersion))
		return s.rebuild()
	}

	s.log.Info("migrating store",
		zap.Int("from", version),
		zap.Int("to", schemaVersion))

	for _, step := range migrationChain {
		if step.from < version {
			continue
		}
		step.apply(s.db, s.log)
		if err := s.setUserVersion(step.to); err != nil {
			return err
		}
	}

	return s.ensureIndexes()
}

// createFresh creates the version-6 schema in an empty database and seeds
// the starter ingredient catalog.
func (s *Store) createFresh() error {
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := s.ensureIndexes(); err != nil {
		return err
	}
	seedStarterIngredients(s.db, s.log)
	return s.setUserVersion(schemaVersion)
}

// rebuild drops every table and recreates the version-6 schema. This is
// the deliberate data-loss fallback for stores no migration path matches.
func (s *Store) rebuild() error {
	rows, err := s.db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Foreign keys off so drop order does not matter.
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := s.db.Exec("DROP TABLE IF EXISTS " + quoteIdent(name)); err != nil {
			return fmt.Errorf("drop table %s: %w", name, err)
		}
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	return s.createFresh()
}

// userVersion reads the schema version marker.
func (s *Store) userVersion() (int, error) {
	var v int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

// setUserVersion writes the schema version marker.
func (s *Store) setUserVersion(v int) error {
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// hasAnyTable reports whether any known entity table exists.
func (s *Store) hasAnyTable() (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'",
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count tables: %w", err)
	}
	return count > 0, nil
}

// ensureIndexes applies the index DDL; all statements use IF NOT EXISTS.
func (s *Store) ensureIndexes() error {
	for _, ddl := range indexDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// quoteIdent quotes an identifier for direct interpolation into DDL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// nowMillis returns the current wall clock as Unix milliseconds, the
// timestamp representation of the schema.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// migrate1to2 rebuilds users, recipes, meal_plans, and grocery_items from
// their legacy shapes. Each table follows the rename → recreate →
// best-effort copy → drop pattern and degrades to an empty table of the
// new shape when the legacy table is missing or incompatible.
func migrate1to2(db *sql.DB, log *zap.Logger) {
	now := nowMillis()

	// users: stage the new shape, map password → password_hash, synthesize
	// email and created_at.
	if _, err := db.Exec(strings.Replace(createUsersV2, "EXISTS users", "EXISTS users_new", 1)); err != nil {
		log.Warn("users staging table", zap.Error(err))
	}
	_, err := db.Exec(fmt.Sprintf(
		"INSERT OR IGNORE INTO users_new (id, username, password_hash, email, created_at) "+
			"SELECT userId, username, password, '', %d FROM users", now))
	if err == nil {
		_, err = db.Exec("DROP TABLE IF EXISTS users")
		if err == nil {
			_, err = db.Exec("ALTER TABLE users_new RENAME TO users")
		}
	}
	if err != nil {
		log.Debug("users legacy copy failed, creating empty table", zap.Error(err))
		if _, err := db.Exec("DROP TABLE IF EXISTS users_new"); err != nil {
			log.Warn("drop users staging table", zap.Error(err))
		}
		if _, err := db.Exec(createUsersV2); err != nil {
			log.Warn("create users table", zap.Error(err))
		}
	}

	// recipes: rename aside, recreate, copy compatible rows with the
	// placeholder owner, drop the staging table regardless of copy success.
	_, renameErr := db.Exec("ALTER TABLE recipes RENAME TO recipes_old")
	recipesOldExists := renameErr == nil
	if _, err := db.Exec(createRecipesV2); err != nil {
		log.Warn("create recipes table", zap.Error(err))
	}
	if recipesOldExists {
		_, err := db.Exec(fmt.Sprintf(
			"INSERT INTO recipes (id, user_id, title, description, ingredients, instructions, "+
				"prep_time_minutes, cook_time_minutes, servings, calories_per_serving, category, "+
				"difficulty_level, image_url, is_favorite, rating, created_at, updated_at) "+
				"SELECT id, %d, title, description, ingredients, instructions, prep_time_minutes, "+
				"cook_time_minutes, servings, calories_per_serving, category, difficulty_level, "+
				"image_url, is_favorite, rating, created_at, updated_at FROM recipes_old",
			placeholderUserID))
		if err != nil {
			log.Debug("recipes legacy copy failed, new table stays empty", zap.Error(err))
		}
		if _, err := db.Exec("DROP TABLE recipes_old"); err != nil {
			log.Warn("drop recipes staging table", zap.Error(err))
		}
	}

	// meal_plans: legacy rows carry planId/day/recipeId and no meal type;
	// meal type is synthesized as Unknown.
	_, renameErr = db.Exec("ALTER TABLE meal_plans RENAME TO meal_plans_old_temp_migration")
	mealPlansOldExists := renameErr == nil
	if _, err := db.Exec(createMealPlans); err != nil {
		log.Warn("create meal_plans table", zap.Error(err))
	}
	if mealPlansOldExists {
		_, err := db.Exec(fmt.Sprintf(
			"INSERT INTO meal_plans (id, user_id, date, meal_type, recipe_id, servings, notes, created_at) "+
				"SELECT planId, %d, day, 'Unknown', recipeId, 1, NULL, %d FROM meal_plans_old_temp_migration",
			placeholderUserID, now))
		if err != nil {
			log.Debug("meal_plans legacy copy failed, new table stays empty", zap.Error(err))
		}
		if _, err := db.Exec("DROP TABLE meal_plans_old_temp_migration"); err != nil {
			log.Warn("drop meal_plans staging table", zap.Error(err))
		}
	}

	// grocery_items: legacy acquired → is_checked, quantity string → numeric
	// amount, unit and category defaulted to placeholders.
	_, renameErr = db.Exec("ALTER TABLE grocery_items RENAME TO grocery_items_old_temp")
	groceryOldExists := renameErr == nil
	if _, err := db.Exec(createGroceryItems); err != nil {
		log.Warn("create grocery_items table", zap.Error(err))
	}
	if groceryOldExists {
		_, err := db.Exec(fmt.Sprintf(
			"INSERT INTO grocery_items (id, user_id, name, amount, unit, category, is_checked, added_date, recipe_source_id) "+
				"SELECT itemId, %d, name, CAST(quantity AS REAL), 'unit', 'Other', acquired, %d, NULL "+
				"FROM grocery_items_old_temp",
			placeholderUserID, now))
		if err != nil {
			log.Debug("grocery_items legacy copy failed, new table stays empty", zap.Error(err))
		}
		if _, err := db.Exec("DROP TABLE grocery_items_old_temp"); err != nil {
			log.Warn("drop grocery_items staging table", zap.Error(err))
		}
	}
}

// migrate2to3 adds the full_name column to users.
func migrate2to3(db *sql.DB, log *zap.Logger) {
	if _, err := db.Exec("ALTER TABLE users ADD COLUMN full_name TEXT NOT NULL DEFAULT ''"); err != nil {
		log.Debug("add users.full_name", zap.Error(err))
	}
}

// migrate3to4 retroactively scopes recipes, meal_plans, and grocery_items
// to the placeholder user. Tables rebuilt by 1→2 already carry user_id;
// the duplicate-column error is expected there and ignored.
func migrate3to4(db *sql.DB, log *zap.Logger) {
	for _, table := range []string{"recipes", "meal_plans", "grocery_items"} {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN user_id INTEGER NOT NULL DEFAULT %d",
			table, placeholderUserID)
		if _, err := db.Exec(stmt); err != nil {
			log.Debug("add user_id column", zap.String("table", table), zap.Error(err))
		}
	}
}

// migrate4to5 creates the ingredient catalog, the recipe_ingredients
// junction, and nutrition_goals, and seeds the starter ingredients. This
// step is additive and non-destructive.
func migrate4to5(db *sql.DB, log *zap.Logger) {
	for _, ddl := range []string{createIngredients, createRecipeIngredients, createNutritionGoals} {
		if _, err := db.Exec(ddl); err != nil {
			log.Warn("create nutrition table", zap.Error(err))
		}
	}
	seedStarterIngredients(db, log)
}

// migrate5to6 drops the legacy free-text ingredients column from recipes,
// superseded by the recipe_ingredients junction, carrying every other
// column forward unchanged.
func migrate5to6(db *sql.DB, log *zap.Logger) {
	if _, err := db.Exec("ALTER TABLE recipes RENAME TO recipes_old_temp"); err != nil {
		log.Debug("recipes missing before column drop, creating empty table", zap.Error(err))
		if _, err := db.Exec(createRecipes); err != nil {
			log.Warn("create recipes table", zap.Error(err))
		}
		return
	}
	if _, err := db.Exec(createRecipes); err != nil {
		log.Warn("create recipes table", zap.Error(err))
	}
	_, err := db.Exec(
		"INSERT INTO recipes (id, user_id, title, description, instructions, prep_time_minutes, " +
			"cook_time_minutes, servings, calories_per_serving, category, difficulty_level, image_url, " +
			"is_favorite, rating, created_at, updated_at) " +
			"SELECT id, user_id, title, description, instructions, prep_time_minutes, cook_time_minutes, " +
			"servings, calories_per_serving, category, difficulty_level, image_url, is_favorite, rating, " +
			"created_at, updated_at FROM recipes_old_temp")
	if err != nil {
		log.Debug("recipes copy failed, new table stays empty", zap.Error(err))
	}
	if _, err := db.Exec("DROP TABLE recipes_old_temp"); err != nil {
		log.Warn("drop recipes staging table", zap.Error(err))
	}
}
