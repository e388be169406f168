package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// RecipesTable provides query and mutation operations on the recipes
// table. All queries are scoped by the owning user.
type RecipesTable struct {
	store *Store
}

const recipeColumns = "id, user_id, title, description, instructions, prep_time_minutes, " +
	"cook_time_minutes, servings, calories_per_serving, category, difficulty_level, " +
	"image_url, is_favorite, rating, created_at, updated_at"

// scanRecipe hydrates one recipes row.
func scanRecipe(row interface{ Scan(...any) error }) (types.Recipe, error) {
	var (
		r        types.Recipe
		desc     sql.NullString
		calories sql.NullInt64
		imageURL sql.NullString
		created  int64
		updated  int64
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &desc, &r.Instructions, &r.PrepTimeMinutes,
		&r.CookTimeMinutes, &r.Servings, &calories, &r.Category, &r.DifficultyLevel,
		&imageURL, &r.IsFavorite, &r.Rating, &created, &updated)
	if err != nil {
		return types.Recipe{}, err
	}
	r.Description = stringPtr(desc)
	if calories.Valid {
		c := int(calories.Int64)
		r.CaloriesPerServing = &c
	}
	r.ImageURL = stringPtr(imageURL)
	r.CreatedAt = fromMillis(created)
	r.UpdatedAt = fromMillis(updated)
	return r, nil
}

// queryRecipes runs a SELECT over recipeColumns and scans all rows.
func (t *RecipesTable) queryRecipes(query string, args ...any) ([]types.Recipe, error) {
	rows, err := t.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []types.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// ListByUser returns all of a user's recipes, newest first.
func (t *RecipesTable) ListByUser(userID int64) ([]types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// ByCategory returns a user's recipes in a category, by title.
func (t *RecipesTable) ByCategory(userID int64, category string) ([]types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id = ? AND category = ? ORDER BY title ASC",
		userID, category)
}

// Favorites returns a user's favorite recipes, by title.
func (t *RecipesTable) Favorites(userID int64) ([]types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id = ? AND is_favorite = 1 ORDER BY title ASC",
		userID)
}

// Get retrieves one recipe owned by the user. Returns ErrNotFound when
// the recipe does not exist or belongs to another user.
func (t *RecipesTable) Get(id, userID int64) (types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.Recipe{}, err
	}
	if id <= 0 {
		return types.Recipe{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow(
		"SELECT "+recipeColumns+" FROM recipes WHERE id = ? AND user_id = ?", id, userID)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return types.Recipe{}, types.ErrNotFound
	}
	if err != nil {
		return types.Recipe{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return r, nil
}

// Search returns a user's recipes whose title, description, or
// instructions contain the query, case-insensitively.
func (t *RecipesTable) Search(userID int64, query string) ([]types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	pattern := "%" + query + "%"
	return t.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id = ? AND (title LIKE ? OR description LIKE ? OR instructions LIKE ?) ORDER BY title ASC",
		userID, pattern, pattern, pattern)
}

// ByCategoryAndTime returns a user's recipes in a category whose total
// prep plus cook time does not exceed maxTimeMinutes.
func (t *RecipesTable) ByCategoryAndTime(userID int64, category string, maxTimeMinutes int) ([]types.Recipe, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id = ? AND category = ? AND prep_time_minutes + cook_time_minutes <= ? ORDER BY title ASC",
		userID, category, maxTimeMinutes)
}

// Categories returns the distinct category names of a user's recipes.
func (t *RecipesTable) Categories(userID int64) ([]string, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query(
		"SELECT DISTINCT category FROM recipes WHERE user_id = ? ORDER BY category ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("list recipe categories: %w", err)
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

// Insert persists a recipe with replace-on-conflict semantics and returns
// the generated ID.
func (t *RecipesTable) Insert(r types.Recipe) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var calories sql.NullInt64
	if r.CaloriesPerServing != nil {
		calories = sql.NullInt64{Int64: int64(*r.CaloriesPerServing), Valid: true}
	}
	res, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO recipes (user_id, title, description, instructions, prep_time_minutes, "+
			"cook_time_minutes, servings, calories_per_serving, category, difficulty_level, image_url, "+
			"is_favorite, rating, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.UserID, r.Title, nullStringPtr(r.Description), r.Instructions, r.PrepTimeMinutes,
		r.CookTimeMinutes, r.Servings, calories, r.Category, r.DifficultyLevel,
		nullStringPtr(r.ImageURL), r.IsFavorite, r.Rating, toMillis(r.CreatedAt), toMillis(r.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe insert id: %w", err)
	}
	t.store.notify(types.TableRecipes)
	return id, nil
}

// Update overwrites a recipe's mutable columns.
func (t *RecipesTable) Update(r types.Recipe) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if r.ID <= 0 {
		return types.ErrInvalidID
	}

	var calories sql.NullInt64
	if r.CaloriesPerServing != nil {
		calories = sql.NullInt64{Int64: int64(*r.CaloriesPerServing), Valid: true}
	}
	res, err := t.store.db.Exec(
		"UPDATE recipes SET title = ?, description = ?, instructions = ?, prep_time_minutes = ?, "+
			"cook_time_minutes = ?, servings = ?, calories_per_serving = ?, category = ?, "+
			"difficulty_level = ?, image_url = ?, is_favorite = ?, rating = ?, updated_at = ? "+
			"WHERE id = ? AND user_id = ?",
		r.Title, nullStringPtr(r.Description), r.Instructions, r.PrepTimeMinutes,
		r.CookTimeMinutes, r.Servings, calories, r.Category, r.DifficultyLevel,
		nullStringPtr(r.ImageURL), r.IsFavorite, r.Rating, toMillis(r.UpdatedAt), r.ID, r.UserID)
	if err != nil {
		return fmt.Errorf("update recipe %d: %w", r.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableRecipes)
	return nil
}

// SetFavorite toggles a recipe's favorite flag.
func (t *RecipesTable) SetFavorite(id, userID int64, favorite bool) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	res, err := t.store.db.Exec(
		"UPDATE recipes SET is_favorite = ? WHERE id = ? AND user_id = ?", favorite, id, userID)
	if err != nil {
		return fmt.Errorf("set recipe favorite %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableRecipes)
	return nil
}

// SetRating updates a recipe's rating.
func (t *RecipesTable) SetRating(id, userID int64, rating float64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	res, err := t.store.db.Exec(
		"UPDATE recipes SET rating = ? WHERE id = ? AND user_id = ?", rating, id, userID)
	if err != nil {
		return fmt.Errorf("set recipe rating %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableRecipes)
	return nil
}

// Delete removes a recipe by ID. Junction rows cascade via the foreign
// key on recipe_ingredients.
func (t *RecipesTable) Delete(id, userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec("DELETE FROM recipes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableRecipes)
	t.store.notify(types.TableRecipeIngredients)
	return nil
}

// Count returns the number of recipes a user owns.
func (t *RecipesTable) Count(userID int64) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	err := t.store.db.QueryRow("SELECT COUNT(*) FROM recipes WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// DeleteAll removes every recipe row.
func (t *RecipesTable) DeleteAll() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec("DELETE FROM recipes"); err != nil {
		return fmt.Errorf("delete recipes: %w", err)
	}
	t.store.notify(types.TableRecipes)
	t.store.notify(types.TableRecipeIngredients)
	return nil
}
