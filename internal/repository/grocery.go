package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// GroceryRepository manages the current user's shopping list, including
// derivation from planned meals.
type GroceryRepository struct {
	store *sqlite.Store
	sess  *session.Manager
}

// List returns the current user's grocery list, grouped by category.
func (r *GroceryRepository) List() ([]types.GroceryItem, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.GroceryItems().ListByUser(uid)
}

// Unchecked returns the items still to buy.
func (r *GroceryRepository) Unchecked() ([]types.GroceryItem, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.GroceryItems().Unchecked(uid)
}

// AddManual puts a hand-entered item on the list.
func (r *GroceryRepository) AddManual(name string, amount float64, unit, category string) (int64, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: item name is required", types.ErrValidation)
	}
	if unit == "" {
		unit = "unit"
	}
	if category == "" {
		category = "Other"
	}

	return r.store.GroceryItems().Insert(types.GroceryItem{
		UserID:    uid,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		Unit:      unit,
		Category:  category,
		AddedDate: time.Now(),
	})
}

// AddRecipe puts one recipe's ingredients on the list, scaled from the
// recipe's base servings to the requested count.
func (r *GroceryRepository) AddRecipe(recipeID int64, servings int) (int, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return 0, err
	}
	items, err := r.itemsForRecipe(uid, recipeID, servings)
	if err != nil {
		return 0, err
	}
	return r.insertConsolidated(items)
}

// GenerateForRange derives grocery items from every meal planned in
// [startDate, endDate]. When replaceGenerated is set, previously derived
// items are cleared first so regeneration does not double-count;
// hand-entered items always survive.
func (r *GroceryRepository) GenerateForRange(startDate, endDate string, replaceGenerated bool) (int, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return 0, err
	}

	plans, err := r.store.MealPlans().InRange(uid, startDate, endDate)
	if err != nil {
		return 0, err
	}

	if replaceGenerated {
		if err := r.store.GroceryItems().DeleteGenerated(uid); err != nil {
			return 0, err
		}
	}

	var all []types.GroceryItem
	for _, plan := range plans {
		items, err := r.itemsForRecipe(uid, plan.RecipeID, plan.Servings)
		if err != nil {
			return 0, fmt.Errorf("derive items for recipe %d: %w", plan.RecipeID, err)
		}
		all = append(all, items...)
	}
	return r.insertConsolidated(all)
}

// itemsForRecipe derives scaled grocery items from one recipe's joined
// ingredient rows.
func (r *GroceryRepository) itemsForRecipe(uid, recipeID int64, servings int) ([]types.GroceryItem, error) {
	recipe, err := r.store.Recipes().Get(recipeID, uid)
	if err != nil {
		return nil, err
	}
	details, err := r.store.RecipeIngredients().ForRecipeWithDetails(recipeID)
	if err != nil {
		return nil, err
	}

	factor := 1.0
	if recipe.Servings > 0 && servings > 0 {
		factor = float64(servings) / float64(recipe.Servings)
	}

	items := make([]types.GroceryItem, 0, len(details))
	for _, d := range details {
		item := d.ToGroceryItem(uid)
		item.Amount *= factor
		items = append(items, item)
	}
	return items, nil
}

// insertConsolidated merges duplicates and writes the result. Returns the
// number of rows inserted.
func (r *GroceryRepository) insertConsolidated(items []types.GroceryItem) (int, error) {
	merged := consolidate(items)
	for _, item := range merged {
		if _, err := r.store.GroceryItems().Insert(item); err != nil {
			return 0, err
		}
	}
	return len(merged), nil
}

// consolidate merges items with the same name and unit
// (case-insensitively), summing their amounts. The first occurrence wins
// on every other field, and input order is preserved.
func consolidate(items []types.GroceryItem) []types.GroceryItem {
	type key struct{ name, unit string }
	index := make(map[key]int, len(items))
	var merged []types.GroceryItem
	for _, item := range items {
		k := key{strings.ToLower(item.Name), strings.ToLower(item.Unit)}
		if i, ok := index[k]; ok {
			merged[i].Amount += item.Amount
			continue
		}
		index[k] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// SetChecked toggles one item.
func (r *GroceryRepository) SetChecked(id int64, checked bool) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.GroceryItems().SetChecked(id, uid, checked)
}

// MarkPurchased checks off every item matching one of the names.
func (r *GroceryRepository) MarkPurchased(names []string) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.GroceryItems().SetCheckedByNames(uid, names)
}

// ClearChecked removes every checked item.
func (r *GroceryRepository) ClearChecked() error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.GroceryItems().DeleteChecked(uid)
}

// ClearGenerated removes every recipe-derived item, keeping manual ones.
func (r *GroceryRepository) ClearGenerated() error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.GroceryItems().DeleteGenerated(uid)
}

// Delete removes one item.
func (r *GroceryRepository) Delete(id int64) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.GroceryItems().Delete(id, uid)
}

// WatchList re-runs the grocery list after every grocery_items mutation.
func (r *GroceryRepository) WatchList() (*Watch[[]types.GroceryItem], error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return newWatch(r.store, func() ([]types.GroceryItem, error) {
		return r.store.GroceryItems().ListByUser(uid)
	}, types.TableGroceryItems), nil
}
