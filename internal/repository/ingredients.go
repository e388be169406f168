package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// IngredientRepository manages the shared ingredient catalog. The catalog
// is global, so no session scope applies.
type IngredientRepository struct {
	store *sqlite.Store
}

// All returns the whole catalog.
func (r *IngredientRepository) All() ([]types.Ingredient, error) {
	return r.store.Ingredients().All()
}

// Search matches the query against ingredient names.
func (r *IngredientRepository) Search(query string) ([]types.Ingredient, error) {
	return r.store.Ingredients().Search(query)
}

// ByCategory filters the catalog by category.
func (r *IngredientRepository) ByCategory(category string) ([]types.Ingredient, error) {
	return r.store.Ingredients().ByCategory(category)
}

// Categories lists the distinct catalog categories.
func (r *IngredientRepository) Categories() ([]string, error) {
	return r.store.Ingredients().Categories()
}

// Get returns one catalog entry.
func (r *IngredientRepository) Get(id int64) (types.Ingredient, error) {
	return r.store.Ingredients().Get(id)
}

// Create adds a catalog entry.
func (r *IngredientRepository) Create(ing types.Ingredient) (int64, error) {
	if strings.TrimSpace(ing.Name) == "" {
		return 0, fmt.Errorf("%w: ingredient name is required", types.ErrValidation)
	}
	if ing.Category == "" {
		ing.Category = "Other"
	}
	if ing.DefaultUnit == "" {
		ing.DefaultUnit = "g"
	}

	now := time.Now()
	ing.ID = 0
	ing.CreatedAt = now
	ing.UpdatedAt = now
	return r.store.Ingredients().Insert(ing)
}

// Update overwrites a catalog entry.
func (r *IngredientRepository) Update(ing types.Ingredient) error {
	if strings.TrimSpace(ing.Name) == "" {
		return fmt.Errorf("%w: ingredient name is required", types.ErrValidation)
	}
	ing.UpdatedAt = time.Now()
	return r.store.Ingredients().Update(ing)
}

// Delete removes a catalog entry; junction rows referencing it cascade.
func (r *IngredientRepository) Delete(id int64) error {
	return r.store.Ingredients().Delete(id)
}

// WatchCatalog re-runs the full catalog query after every ingredients
// mutation.
func (r *IngredientRepository) WatchCatalog() *Watch[[]types.Ingredient] {
	return newWatch(r.store, func() ([]types.Ingredient, error) {
		return r.store.Ingredients().All()
	}, types.TableIngredients)
}
