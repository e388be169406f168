package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// GroceryItemsTable provides query and mutation operations on the
// grocery_items table.
type GroceryItemsTable struct {
	store *Store
}

const groceryItemColumns = "id, user_id, name, amount, unit, category, is_checked, added_date, recipe_source_id"

// scanGroceryItem hydrates one grocery_items row.
func scanGroceryItem(row interface{ Scan(...any) error }) (types.GroceryItem, error) {
	var (
		g      types.GroceryItem
		added  int64
		source sql.NullInt64
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Amount, &g.Unit, &g.Category,
		&g.IsChecked, &added, &source)
	if err != nil {
		return types.GroceryItem{}, err
	}
	g.AddedDate = fromMillis(added)
	if source.Valid {
		id := source.Int64
		g.RecipeSourceID = &id
	}
	return g, nil
}

func (t *GroceryItemsTable) queryItems(query string, args ...any) ([]types.GroceryItem, error) {
	rows, err := t.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grocery items: %w", err)
	}
	defer rows.Close()

	var items []types.GroceryItem
	for rows.Next() {
		g, err := scanGroceryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grocery item: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// ListByUser returns a user's grocery list grouped by category then name.
func (t *GroceryItemsTable) ListByUser(userID int64) ([]types.GroceryItem, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryItems(
		"SELECT "+groceryItemColumns+" FROM grocery_items WHERE user_id = ? ORDER BY category, name", userID)
}

// Unchecked returns a user's unchecked items grouped by category then
// name.
func (t *GroceryItemsTable) Unchecked(userID int64) ([]types.GroceryItem, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryItems(
		"SELECT "+groceryItemColumns+" FROM grocery_items WHERE user_id = ? AND is_checked = 0 ORDER BY category, name",
		userID)
}

// Get retrieves one grocery item owned by the user.
func (t *GroceryItemsTable) Get(id, userID int64) (types.GroceryItem, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.GroceryItem{}, err
	}
	if id <= 0 {
		return types.GroceryItem{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow(
		"SELECT "+groceryItemColumns+" FROM grocery_items WHERE id = ? AND user_id = ?", id, userID)
	g, err := scanGroceryItem(row)
	if err == sql.ErrNoRows {
		return types.GroceryItem{}, types.ErrNotFound
	}
	if err != nil {
		return types.GroceryItem{}, fmt.Errorf("get grocery item %d: %w", id, err)
	}
	return g, nil
}

// Search returns a user's items whose name contains the query,
// case-insensitively.
func (t *GroceryItemsTable) Search(userID int64, query string) ([]types.GroceryItem, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryItems(
		"SELECT "+groceryItemColumns+" FROM grocery_items WHERE user_id = ? AND name LIKE ? ORDER BY category, name",
		userID, "%"+query+"%")
}

// Insert persists a grocery item with replace-on-conflict semantics and
// returns the generated ID.
func (t *GroceryItemsTable) Insert(g types.GroceryItem) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var source sql.NullInt64
	if g.RecipeSourceID != nil {
		source = sql.NullInt64{Int64: *g.RecipeSourceID, Valid: true}
	}
	res, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO grocery_items (user_id, name, amount, unit, category, is_checked, added_date, recipe_source_id) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		g.UserID, g.Name, g.Amount, g.Unit, g.Category, g.IsChecked, toMillis(g.AddedDate), source)
	if err != nil {
		return 0, fmt.Errorf("insert grocery item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("grocery item insert id: %w", err)
	}
	t.store.notify(types.TableGroceryItems)
	return id, nil
}

// Update overwrites a grocery item's mutable columns.
func (t *GroceryItemsTable) Update(g types.GroceryItem) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if g.ID <= 0 {
		return types.ErrInvalidID
	}

	var source sql.NullInt64
	if g.RecipeSourceID != nil {
		source = sql.NullInt64{Int64: *g.RecipeSourceID, Valid: true}
	}
	res, err := t.store.db.Exec(
		"UPDATE grocery_items SET name = ?, amount = ?, unit = ?, category = ?, is_checked = ?, recipe_source_id = ? "+
			"WHERE id = ? AND user_id = ?",
		g.Name, g.Amount, g.Unit, g.Category, g.IsChecked, source, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update grocery item %d: %w", g.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// SetChecked toggles one item's checked flag.
func (t *GroceryItemsTable) SetChecked(id, userID int64, checked bool) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	res, err := t.store.db.Exec(
		"UPDATE grocery_items SET is_checked = ? WHERE id = ? AND user_id = ?", checked, id, userID)
	if err != nil {
		return fmt.Errorf("set grocery item checked %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// SetCheckedByNames marks every item with one of the given names as
// checked, matching case-insensitively.
func (t *GroceryItemsTable) SetCheckedByNames(userID int64, names []string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	for _, name := range names {
		if _, err := t.store.db.Exec(
			"UPDATE grocery_items SET is_checked = 1 WHERE user_id = ? AND name = ? COLLATE NOCASE",
			userID, name); err != nil {
			return fmt.Errorf("check grocery item %q: %w", name, err)
		}
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// Delete removes one grocery item by ID.
func (t *GroceryItemsTable) Delete(id, userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec("DELETE FROM grocery_items WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete grocery item %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// DeleteChecked bulk-clears a user's checked items.
func (t *GroceryItemsTable) DeleteChecked(userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec(
		"DELETE FROM grocery_items WHERE user_id = ? AND is_checked = 1", userID); err != nil {
		return fmt.Errorf("clear checked grocery items: %w", err)
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// DeleteGenerated removes every item derived from a recipe (rows with a
// recipe source), leaving manual entries alone.
func (t *GroceryItemsTable) DeleteGenerated(userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec(
		"DELETE FROM grocery_items WHERE user_id = ? AND recipe_source_id IS NOT NULL", userID); err != nil {
		return fmt.Errorf("clear generated grocery items: %w", err)
	}
	t.store.notify(types.TableGroceryItems)
	return nil
}

// Count returns the number of items on a user's list.
func (t *GroceryItemsTable) Count(userID int64) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	err := t.store.db.QueryRow("SELECT COUNT(*) FROM grocery_items WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count grocery items: %w", err)
	}
	return count, nil
}
