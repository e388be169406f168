package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// NutritionGoalsTable provides operations on the nutrition_goals table.
// The primary key is the user ID, so each user has at most one row;
// inserts use replace-on-conflict semantics.
type NutritionGoalsTable struct {
	store *Store
}

const nutritionGoalColumns = "user_id, daily_calories, daily_protein, daily_carbs, daily_fat, " +
	"daily_fiber, daily_sugar_limit, daily_sodium_limit, activity_level, goal_type, created_at, updated_at"

// scanNutritionGoal hydrates one nutrition_goals row.
func scanNutritionGoal(row interface{ Scan(...any) error }) (types.NutritionGoal, error) {
	var (
		g       types.NutritionGoal
		created int64
		updated int64
	)
	err := row.Scan(&g.UserID, &g.DailyCalories, &g.DailyProtein, &g.DailyCarbs, &g.DailyFat,
		&g.DailyFiber, &g.DailySugarLimit, &g.DailySodiumLimit, &g.ActivityLevel, &g.GoalType,
		&created, &updated)
	if err != nil {
		return types.NutritionGoal{}, err
	}
	g.CreatedAt = fromMillis(created)
	g.UpdatedAt = fromMillis(updated)
	return g, nil
}

// Get retrieves a user's goal row. Returns ErrNotFound when the user has
// no goal configured.
func (t *NutritionGoalsTable) Get(userID int64) (types.NutritionGoal, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.NutritionGoal{}, err
	}
	if userID <= 0 {
		return types.NutritionGoal{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow(
		"SELECT "+nutritionGoalColumns+" FROM nutrition_goals WHERE user_id = ?", userID)
	g, err := scanNutritionGoal(row)
	if err == sql.ErrNoRows {
		return types.NutritionGoal{}, types.ErrNotFound
	}
	if err != nil {
		return types.NutritionGoal{}, fmt.Errorf("get nutrition goal for user %d: %w", userID, err)
	}
	return g, nil
}

// Upsert writes a user's goal row, replacing any existing one. Exactly
// one row per user exists afterward.
func (t *NutritionGoalsTable) Upsert(g types.NutritionGoal) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if g.UserID <= 0 {
		return types.ErrInvalidID
	}

	_, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO nutrition_goals (user_id, daily_calories, daily_protein, daily_carbs, "+
			"daily_fat, daily_fiber, daily_sugar_limit, daily_sodium_limit, activity_level, goal_type, "+
			"created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		g.UserID, g.DailyCalories, g.DailyProtein, g.DailyCarbs, g.DailyFat, g.DailyFiber,
		g.DailySugarLimit, g.DailySodiumLimit, g.ActivityLevel, g.GoalType,
		toMillis(g.CreatedAt), toMillis(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert nutrition goal for user %d: %w", g.UserID, err)
	}
	t.store.notify(types.TableNutritionGoals)
	return nil
}

// Delete removes a user's goal row.
func (t *NutritionGoalsTable) Delete(userID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if userID <= 0 {
		return types.ErrInvalidID
	}

	if _, err := t.store.db.Exec("DELETE FROM nutrition_goals WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete nutrition goal for user %d: %w", userID, err)
	}
	t.store.notify(types.TableNutritionGoals)
	return nil
}

// Has reports whether a user has a goal row.
func (t *NutritionGoalsTable) Has(userID int64) (bool, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return false, err
	}

	var count int
	err := t.store.db.QueryRow(
		"SELECT COUNT(*) FROM nutrition_goals WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count nutrition goals: %w", err)
	}
	return count > 0, nil
}

// CountAll returns the total number of goal rows, used by the replace
// semantics tests.
func (t *NutritionGoalsTable) CountAll() (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := t.store.db.QueryRow("SELECT COUNT(*) FROM nutrition_goals").Scan(&count); err != nil {
		return 0, fmt.Errorf("count nutrition goals: %w", err)
	}
	return count, nil
}
