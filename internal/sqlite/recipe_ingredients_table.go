package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// RecipeIngredientsTable provides operations on the recipe_ingredients
// junction. Rows cascade-delete with their recipe or ingredient, and the
// order index is kept contiguous per recipe after every mutation.
type RecipeIngredientsTable struct {
	store *Store
}

const recipeIngredientColumns = "id, recipe_id, ingredient_id, amount, unit, notes, is_optional, order_index"

// scanRecipeIngredient hydrates one recipe_ingredients row.
func scanRecipeIngredient(row interface{ Scan(...any) error }) (types.RecipeIngredient, error) {
	var (
		ri    types.RecipeIngredient
		notes sql.NullString
	)
	err := row.Scan(&ri.ID, &ri.RecipeID, &ri.IngredientID, &ri.Amount, &ri.Unit,
		&notes, &ri.IsOptional, &ri.OrderIndex)
	if err != nil {
		return types.RecipeIngredient{}, err
	}
	ri.Notes = stringPtr(notes)
	return ri, nil
}

// ForRecipe returns a recipe's junction rows in display order.
func (t *RecipeIngredientsTable) ForRecipe(recipeID int64) ([]types.RecipeIngredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query(
		"SELECT "+recipeIngredientColumns+" FROM recipe_ingredients WHERE recipe_id = ? ORDER BY order_index ASC",
		recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var result []types.RecipeIngredient
	for rows.Next() {
		ri, err := scanRecipeIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		result = append(result, ri)
	}
	return result, rows.Err()
}

// ForRecipeWithDetails returns a recipe's junction rows joined with their
// catalog ingredients, in display order.
func (t *RecipeIngredientsTable) ForRecipeWithDetails(recipeID int64) ([]types.RecipeIngredientWithDetails, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query(
		"SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.amount, ri.unit, ri.notes, ri.is_optional, ri.order_index, "+
			"i.id, i.name, i.category, i.default_unit, i.calories_per_100g, i.protein_per_100g, i.carbs_per_100g, "+
			"i.fat_per_100g, i.fiber_per_100g, i.sugar_per_100g, i.sodium_per_100g, i.created_at, i.updated_at "+
			"FROM recipe_ingredients ri INNER JOIN ingredients i ON i.id = ri.ingredient_id "+
			"WHERE ri.recipe_id = ? ORDER BY ri.order_index ASC",
		recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients with details: %w", err)
	}
	defer rows.Close()

	var result []types.RecipeIngredientWithDetails
	for rows.Next() {
		var (
			d       types.RecipeIngredientWithDetails
			notes   sql.NullString
			created int64
			updated int64
		)
		err := rows.Scan(
			&d.RecipeIngredient.ID, &d.RecipeIngredient.RecipeID, &d.RecipeIngredient.IngredientID,
			&d.RecipeIngredient.Amount, &d.RecipeIngredient.Unit, &notes,
			&d.RecipeIngredient.IsOptional, &d.RecipeIngredient.OrderIndex,
			&d.Ingredient.ID, &d.Ingredient.Name, &d.Ingredient.Category, &d.Ingredient.DefaultUnit,
			&d.Ingredient.CaloriesPer100g, &d.Ingredient.ProteinPer100g, &d.Ingredient.CarbsPer100g,
			&d.Ingredient.FatPer100g, &d.Ingredient.FiberPer100g, &d.Ingredient.SugarPer100g,
			&d.Ingredient.SodiumPer100g, &created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scan recipe ingredient details: %w", err)
		}
		d.RecipeIngredient.Notes = stringPtr(notes)
		d.Ingredient.CreatedAt = fromMillis(created)
		d.Ingredient.UpdatedAt = fromMillis(updated)
		result = append(result, d)
	}
	return result, rows.Err()
}

// RecipesUsing returns the junction rows that reference an ingredient.
func (t *RecipeIngredientsTable) RecipesUsing(ingredientID int64) ([]types.RecipeIngredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query(
		"SELECT "+recipeIngredientColumns+" FROM recipe_ingredients WHERE ingredient_id = ?", ingredientID)
	if err != nil {
		return nil, fmt.Errorf("query recipes using ingredient: %w", err)
	}
	defer rows.Close()

	var result []types.RecipeIngredient
	for rows.Next() {
		ri, err := scanRecipeIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		result = append(result, ri)
	}
	return result, rows.Err()
}

// Insert persists one junction row and returns the generated ID.
func (t *RecipeIngredientsTable) Insert(ri types.RecipeIngredient) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	id, err := t.insertLocked(t.store.db, ri)
	if err != nil {
		return 0, err
	}
	t.store.notify(types.TableRecipeIngredients)
	return id, nil
}

// execer covers *sql.DB and *sql.Tx for inserts inside and outside
// transactions.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (t *RecipeIngredientsTable) insertLocked(ex execer, ri types.RecipeIngredient) (int64, error) {
	res, err := ex.Exec(
		"INSERT OR REPLACE INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit, notes, is_optional, order_index) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?)",
		ri.RecipeID, ri.IngredientID, ri.Amount, ri.Unit, nullStringPtr(ri.Notes), ri.IsOptional, ri.OrderIndex)
	if err != nil {
		return 0, fmt.Errorf("insert recipe ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe ingredient insert id: %w", err)
	}
	return id, nil
}

// ReplaceForRecipe replaces a recipe's entire ingredient list in a single
// transaction: delete all existing rows for the recipe, then insert the
// new rows with contiguous order indexes. Never a diff or patch.
func (t *RecipeIngredientsTable) ReplaceForRecipe(recipeID int64, ingredients []types.RecipeIngredient) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if recipeID <= 0 {
		return types.ErrInvalidID
	}

	tx, err := t.store.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ingredient replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}
	for i, ri := range ingredients {
		ri.RecipeID = recipeID
		ri.OrderIndex = i
		ri.ID = 0
		if _, err := t.insertLocked(tx, ri); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingredient replace: %w", err)
	}
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// Update overwrites one junction row.
func (t *RecipeIngredientsTable) Update(ri types.RecipeIngredient) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if ri.ID <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec(
		"UPDATE recipe_ingredients SET ingredient_id = ?, amount = ?, unit = ?, notes = ?, is_optional = ?, order_index = ? WHERE id = ?",
		ri.IngredientID, ri.Amount, ri.Unit, nullStringPtr(ri.Notes), ri.IsOptional, ri.OrderIndex, ri.ID)
	if err != nil {
		return fmt.Errorf("update recipe ingredient %d: %w", ri.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// Delete removes one junction row by ID and closes the order gap it
// leaves, keeping indexes contiguous per recipe.
func (t *RecipeIngredientsTable) Delete(id int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	tx, err := t.store.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ingredient delete: %w", err)
	}
	defer tx.Rollback()

	var recipeID int64
	var orderIndex int
	err = tx.QueryRow(
		"SELECT recipe_id, order_index FROM recipe_ingredients WHERE id = ?", id,
	).Scan(&recipeID, &orderIndex)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find recipe ingredient %d: %w", id, err)
	}

	if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete recipe ingredient %d: %w", id, err)
	}
	_, err = tx.Exec(
		"UPDATE recipe_ingredients SET order_index = order_index - 1 WHERE recipe_id = ? AND order_index > ?",
		recipeID, orderIndex)
	if err != nil {
		return fmt.Errorf("reindex recipe ingredients: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingredient delete: %w", err)
	}
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// DeleteForRecipe removes all junction rows of a recipe.
func (t *RecipeIngredientsTable) DeleteForRecipe(recipeID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("delete recipe ingredients: %w", err)
	}
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// Count returns the number of junction rows for a recipe.
func (t *RecipeIngredientsTable) Count(recipeID int64) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	err := t.store.db.QueryRow(
		"SELECT COUNT(*) FROM recipe_ingredients WHERE recipe_id = ?", recipeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipe ingredients: %w", err)
	}
	return count, nil
}
