package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// MealPlansTable provides query and mutation operations on the meal_plans
// table. Slots (user, date, meal type) are deliberately not unique:
// multiple recipes can occupy one slot.
type MealPlansTable struct {
	store *Store
}

const mealPlanColumns = "id, user_id, date, meal_type, recipe_id, servings, notes, created_at"

// scanMealPlan hydrates one meal_plans row.
func scanMealPlan(row interface{ Scan(...any) error }) (types.MealPlan, error) {
	var (
		mp      types.MealPlan
		notes   sql.NullString
		created int64
	)
	err := row.Scan(&mp.ID, &mp.UserID, &mp.Date, &mp.MealType, &mp.RecipeID,
		&mp.Servings, &notes, &created)
	if err != nil {
		return types.MealPlan{}, err
	}
	mp.Notes = stringPtr(notes)
	mp.CreatedAt = fromMillis(created)
	return mp, nil
}

func (t *MealPlansTable) queryMealPlans(query string, args ...any) ([]types.MealPlan, error) {
	rows, err := t.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meal plans: %w", err)
	}
	defer rows.Close()

	var plans []types.MealPlan
	for rows.Next() {
		mp, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, mp)
	}
	return plans, rows.Err()
}

// ListByUser returns all of a user's meal plans ordered by date and meal
// type.
func (t *MealPlansTable) ListByUser(userID int64) ([]types.MealPlan, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryMealPlans(
		"SELECT "+mealPlanColumns+" FROM meal_plans WHERE user_id = ? ORDER BY date, meal_type", userID)
}

// ForDate returns a user's meal plans on one date.
func (t *MealPlansTable) ForDate(userID int64, date string) ([]types.MealPlan, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryMealPlans(
		"SELECT "+mealPlanColumns+" FROM meal_plans WHERE user_id = ? AND date = ? ORDER BY meal_type",
		userID, date)
}

// InRange returns a user's meal plans with dates in [startDate, endDate],
// ordered by date and meal type. Dates compare lexicographically in
// YYYY-MM-DD form.
func (t *MealPlansTable) InRange(userID int64, startDate, endDate string) ([]types.MealPlan, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}
	return t.queryMealPlans(
		"SELECT "+mealPlanColumns+" FROM meal_plans WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date, meal_type",
		userID, startDate, endDate)
}

// Get retrieves one meal plan owned by the user.
func (t *MealPlansTable) Get(id, userID int64) (types.MealPlan, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.MealPlan{}, err
	}
	if id <= 0 {
		return types.MealPlan{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow(
		"SELECT "+mealPlanColumns+" FROM meal_plans WHERE id = ? AND user_id = ?", id, userID)
	mp, err := scanMealPlan(row)
	if err == sql.ErrNoRows {
		return types.MealPlan{}, types.ErrNotFound
	}
	if err != nil {
		return types.MealPlan{}, fmt.Errorf("get meal plan %d: %w", id, err)
	}
	return mp, nil
}

// Insert persists a meal plan with replace-on-conflict semantics and
// returns the generated ID.
func (t *MealPlansTable) Insert(mp types.MealPlan) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	res, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO meal_plans (user_id, date, meal_type, recipe_id, servings, notes, created_at) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?)",
		mp.UserID, mp.Date, mp.MealType, mp.RecipeID, mp.Servings, nullStringPtr(mp.Notes), toMillis(mp.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert meal plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("meal plan insert id: %w", err)
	}
	t.store.notify(types.TableMealPlans)
	return id, nil
}

// UpdateServings changes the serving count of one meal plan.
func (t *MealPlansTable) UpdateServings(id, userID int64, servings int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	res, err := t.store.db.Exec(
		"UPDATE meal_plans SET servings = ? WHERE id = ? AND user_id = ?", servings, id, userID)
	if err != nil {
		return fmt.Errorf("update meal plan servings %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableMealPlans)
	return nil
}

// Delete removes one meal plan by ID.
func (t *MealPlansTable) Delete(id, userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	res, err := t.store.db.Exec("DELETE FROM meal_plans WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete meal plan %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableMealPlans)
	return nil
}

// DeleteForDate clears every meal plan a user has on one date.
func (t *MealPlansTable) DeleteForDate(userID int64, date string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec(
		"DELETE FROM meal_plans WHERE user_id = ? AND date = ?", userID, date); err != nil {
		return fmt.Errorf("clear meal plans for %s: %w", date, err)
	}
	t.store.notify(types.TableMealPlans)
	return nil
}

// DeleteByDateAndType clears one meal slot. Meal type matches
// case-insensitively.
func (t *MealPlansTable) DeleteByDateAndType(userID int64, date, mealType string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec(
		"DELETE FROM meal_plans WHERE user_id = ? AND date = ? AND meal_type = ? COLLATE NOCASE",
		userID, date, mealType); err != nil {
		return fmt.Errorf("clear meal slot %s %s: %w", date, mealType, err)
	}
	t.store.notify(types.TableMealPlans)
	return nil
}

// Count returns the number of meal plans a user has.
func (t *MealPlansTable) Count(userID int64) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	err := t.store.db.QueryRow("SELECT COUNT(*) FROM meal_plans WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count meal plans: %w", err)
	}
	return count, nil
}
