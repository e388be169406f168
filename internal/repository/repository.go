// Package repository exposes the data layer the way the app consumes it:
// per-entity repositories that resolve the current user from the session
// store on every call, apply timestamps and defaults, and validate input
// before touching the database. UI-facing callers never pass user ids.
package repository

import (
	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
)

// Repositories bundles all per-entity repositories over one store and one
// session. The session is injected explicitly; there is no process-wide
// singleton.
type Repositories struct {
	Users       *UserRepository
	Recipes     *RecipeRepository
	Ingredients *IngredientRepository
	MealPlans   *MealPlanRepository
	Grocery     *GroceryRepository
	Nutrition   *NutritionRepository
}

// New wires the repositories over a store and a session manager.
func New(store *sqlite.Store, sess *session.Manager) *Repositories {
	return &Repositories{
		Users:       &UserRepository{store: store, sess: sess},
		Recipes:     &RecipeRepository{store: store, sess: sess},
		Ingredients: &IngredientRepository{store: store},
		MealPlans:   &MealPlanRepository{store: store, sess: sess},
		Grocery:     &GroceryRepository{store: store, sess: sess},
		Nutrition:   &NutritionRepository{store: store, sess: sess},
	}
}
