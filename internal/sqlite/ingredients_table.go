package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// IngredientsTable provides query and mutation operations on the shared
// ingredient catalog. The catalog is global, not user-scoped.
type IngredientsTable struct {
	store *Store
}

const ingredientColumns = "id, name, category, default_unit, calories_per_100g, protein_per_100g, " +
	"carbs_per_100g, fat_per_100g, fiber_per_100g, sugar_per_100g, sodium_per_100g, created_at, updated_at"

// scanIngredient hydrates one ingredients row.
func scanIngredient(row interface{ Scan(...any) error }) (types.Ingredient, error) {
	var (
		ing     types.Ingredient
		created int64
		updated int64
	)
	err := row.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.DefaultUnit,
		&ing.CaloriesPer100g, &ing.ProteinPer100g, &ing.CarbsPer100g, &ing.FatPer100g,
		&ing.FiberPer100g, &ing.SugarPer100g, &ing.SodiumPer100g, &created, &updated)
	if err != nil {
		return types.Ingredient{}, err
	}
	ing.CreatedAt = fromMillis(created)
	ing.UpdatedAt = fromMillis(updated)
	return ing, nil
}

func (t *IngredientsTable) queryIngredients(query string, args ...any) ([]types.Ingredient, error) {
	rows, err := t.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []types.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// All returns the whole catalog, by name.
func (t *IngredientsTable) All() ([]types.Ingredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryIngredients("SELECT " + ingredientColumns + " FROM ingredients ORDER BY name ASC")
}

// ByCategory returns the catalog entries in a category, by name.
func (t *IngredientsTable) ByCategory(category string) ([]types.Ingredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryIngredients(
		"SELECT "+ingredientColumns+" FROM ingredients WHERE category = ? ORDER BY name ASC", category)
}

// Get retrieves one catalog entry by ID.
func (t *IngredientsTable) Get(id int64) (types.Ingredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.Ingredient{}, err
	}
	if id <= 0 {
		return types.Ingredient{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow("SELECT "+ingredientColumns+" FROM ingredients WHERE id = ?", id)
	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return types.Ingredient{}, types.ErrNotFound
	}
	if err != nil {
		return types.Ingredient{}, fmt.Errorf("get ingredient %d: %w", id, err)
	}
	return ing, nil
}

// Search returns catalog entries whose name contains the query,
// case-insensitively.
func (t *IngredientsTable) Search(query string) ([]types.Ingredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryIngredients(
		"SELECT "+ingredientColumns+" FROM ingredients WHERE name LIKE ? ORDER BY name ASC",
		"%"+query+"%")
}

// Categories returns the distinct catalog categories.
func (t *IngredientsTable) Categories() ([]string, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query("SELECT DISTINCT category FROM ingredients ORDER BY category ASC")
	if err != nil {
		return nil, fmt.Errorf("list ingredient categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Insert persists a catalog entry with replace-on-conflict semantics and
// returns the generated ID.
func (t *IngredientsTable) Insert(ing types.Ingredient) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	res, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO ingredients (name, category, default_unit, calories_per_100g, "+
			"protein_per_100g, carbs_per_100g, fat_per_100g, fiber_per_100g, sugar_per_100g, "+
			"sodium_per_100g, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		ing.Name, ing.Category, ing.DefaultUnit, ing.CaloriesPer100g, ing.ProteinPer100g,
		ing.CarbsPer100g, ing.FatPer100g, ing.FiberPer100g, ing.SugarPer100g, ing.SodiumPer100g,
		toMillis(ing.CreatedAt), toMillis(ing.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ingredient insert id: %w", err)
	}
	t.store.notify(types.TableIngredients)
	return id, nil
}

// Update overwrites a catalog entry's mutable columns.
func (t *IngredientsTable) Update(ing types.Ingredient) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if ing.ID <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec(
		"UPDATE ingredients SET name = ?, category = ?, default_unit = ?, calories_per_100g = ?, "+
			"protein_per_100g = ?, carbs_per_100g = ?, fat_per_100g = ?, fiber_per_100g = ?, "+
			"sugar_per_100g = ?, sodium_per_100g = ?, updated_at = ? WHERE id = ?",
		ing.Name, ing.Category, ing.DefaultUnit, ing.CaloriesPer100g, ing.ProteinPer100g,
		ing.CarbsPer100g, ing.FatPer100g, ing.FiberPer100g, ing.SugarPer100g, ing.SodiumPer100g,
		toMillis(ing.UpdatedAt), ing.ID)
	if err != nil {
		return fmt.Errorf("update ingredient %d: %w", ing.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableIngredients)
	return nil
}

// Delete removes a catalog entry by ID. Junction rows referencing it
// cascade via the foreign key on recipe_ingredients.
func (t *IngredientsTable) Delete(id int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec("DELETE FROM ingredients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete ingredient %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableIngredients)
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// Count returns the catalog size.
func (t *IngredientsTable) Count() (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := t.store.db.QueryRow("SELECT COUNT(*) FROM ingredients").Scan(&count); err != nil {
		return 0, fmt.Errorf("count ingredients: %w", err)
	}
	return count, nil
}
