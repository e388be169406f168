package repository

import (
	"fmt"
	"time"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/nutrition"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// MealPlanRepository schedules recipes onto meal slots for the current
// user. Slots are not unique: planning two recipes for the same slot
// creates two rows.
type MealPlanRepository struct {
	store *sqlite.Store
	sess  *session.Manager
}

// Plan schedules a recipe. The recipe must exist and belong to the current
// user; the meal type is normalized to its canonical form.
func (r *MealPlanRepository) Plan(date, mealType string, recipeID int64, servings int, notes *string) (int64, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return 0, err
	}
	if !nutrition.ValidDate(date) {
		return 0, fmt.Errorf("%w: bad date %q", types.ErrValidation, date)
	}
	if servings <= 0 {
		return 0, fmt.Errorf("%w: servings must be positive", types.ErrValidation)
	}
	if _, err := r.store.Recipes().Get(recipeID, uid); err != nil {
		return 0, fmt.Errorf("look up recipe: %w", err)
	}

	return r.store.MealPlans().Insert(types.MealPlan{
		UserID:    uid,
		Date:      date,
		MealType:  types.NormalizeMealType(mealType),
		RecipeID:  recipeID,
		Servings:  servings,
		Notes:     notes,
		CreatedAt: time.Now(),
	})
}

// ForDate returns the current user's plans on one date.
func (r *MealPlanRepository) ForDate(date string) ([]types.MealPlan, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.MealPlans().ForDate(uid, date)
}

// Range returns the current user's plans between two dates, inclusive.
func (r *MealPlanRepository) Range(startDate, endDate string) ([]types.MealPlan, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.MealPlans().InRange(uid, startDate, endDate)
}

// Week returns the current user's plans for the seven days starting at
// startDate.
func (r *MealPlanRepository) Week(startDate string) ([]types.MealPlan, error) {
	dates, err := nutrition.WeekDates(startDate)
	if err != nil {
		return nil, err
	}
	return r.Range(dates[0], dates[len(dates)-1])
}

// UpdateServings changes the serving count of one plan.
func (r *MealPlanRepository) UpdateServings(id int64, servings int) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	if servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", types.ErrValidation)
	}
	return r.store.MealPlans().UpdateServings(id, uid, servings)
}

// Delete removes one plan.
func (r *MealPlanRepository) Delete(id int64) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.MealPlans().Delete(id, uid)
}

// ClearDate removes every plan on one date.
func (r *MealPlanRepository) ClearDate(date string) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.MealPlans().DeleteForDate(uid, date)
}

// ClearSlot removes every plan in one (date, meal type) slot.
func (r *MealPlanRepository) ClearSlot(date, mealType string) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.MealPlans().DeleteByDateAndType(uid, date, mealType)
}

// WatchDate re-runs the plans-for-date query after every meal_plans
// mutation. The user id and date are fixed at subscription time.
func (r *MealPlanRepository) WatchDate(date string) (*Watch[[]types.MealPlan], error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return newWatch(r.store, func() ([]types.MealPlan, error) {
		return r.store.MealPlans().ForDate(uid, date)
	}, types.TableMealPlans), nil
}
