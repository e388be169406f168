package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// RecipeRepository scopes recipe operations to the current user.
type RecipeRepository struct {
	store *sqlite.Store
	sess  *session.Manager
}

func validateRecipe(r types.Recipe) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: recipe title is required", types.ErrValidation)
	}
	if strings.TrimSpace(r.Instructions) == "" {
		return fmt.Errorf("%w: recipe instructions are required", types.ErrValidation)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", types.ErrValidation)
	}
	return nil
}

// List returns the current user's recipes, newest first.
func (r *RecipeRepository) List() ([]types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().ListByUser(uid)
}

// Favorites returns the current user's favorite recipes.
func (r *RecipeRepository) Favorites() ([]types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().Favorites(uid)
}

// ByCategory filters the current user's recipes by category.
func (r *RecipeRepository) ByCategory(category string) ([]types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().ByCategory(uid, category)
}

// Search matches the query against title, description, and instructions.
func (r *RecipeRepository) Search(query string) ([]types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().Search(uid, query)
}

// QuickInCategory returns recipes in a category whose total time fits the
// limit.
func (r *RecipeRepository) QuickInCategory(category string, maxTimeMinutes int) ([]types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().ByCategoryAndTime(uid, category, maxTimeMinutes)
}

// Categories lists the distinct categories of the current user's recipes.
func (r *RecipeRepository) Categories() ([]string, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return r.store.Recipes().Categories(uid)
}

// Get returns one recipe of the current user.
func (r *RecipeRepository) Get(id int64) (types.Recipe, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return types.Recipe{}, err
	}
	return r.store.Recipes().Get(id, uid)
}

// GetWithIngredients returns a recipe together with its ordered junction
// rows.
func (r *RecipeRepository) GetWithIngredients(id int64) (types.RecipeWithIngredients, error) {
	recipe, err := r.Get(id)
	if err != nil {
		return types.RecipeWithIngredients{}, err
	}
	rows, err := r.store.RecipeIngredients().ForRecipe(id)
	if err != nil {
		return types.RecipeWithIngredients{}, err
	}
	return types.RecipeWithIngredients{Recipe: recipe, Ingredients: rows}, nil
}

// IngredientDetails returns a recipe's joined ingredient rows for display
// and nutrition.
func (r *RecipeRepository) IngredientDetails(id int64) ([]types.RecipeIngredientWithDetails, error) {
	if _, err := r.Get(id); err != nil {
		return nil, err
	}
	return r.store.RecipeIngredients().ForRecipeWithDetails(id)
}

// Create persists a new recipe for the current user, replacing its
// ingredient list in the same call when one is given.
func (r *RecipeRepository) Create(recipe types.Recipe, ingredients []types.RecipeIngredient) (int64, error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return 0, err
	}
	if err := validateRecipe(recipe); err != nil {
		return 0, err
	}

	now := time.Now()
	recipe.ID = 0
	recipe.UserID = uid
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	id, err := r.store.Recipes().Insert(recipe)
	if err != nil {
		return 0, err
	}
	if len(ingredients) > 0 {
		if err := r.store.RecipeIngredients().ReplaceForRecipe(id, ingredients); err != nil {
			return 0, fmt.Errorf("save ingredient list: %w", err)
		}
	}
	return id, nil
}

// Update overwrites a recipe of the current user. A non-nil ingredient
// slice replaces the entire list; nil leaves it untouched.
func (r *RecipeRepository) Update(recipe types.Recipe, ingredients []types.RecipeIngredient) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	if err := validateRecipe(recipe); err != nil {
		return err
	}

	recipe.UserID = uid
	recipe.UpdatedAt = time.Now()
	if err := r.store.Recipes().Update(recipe); err != nil {
		return err
	}
	if ingredients != nil {
		if err := r.store.RecipeIngredients().ReplaceForRecipe(recipe.ID, ingredients); err != nil {
			return fmt.Errorf("replace ingredient list: %w", err)
		}
	}
	return nil
}

// ToggleFavorite flips a recipe's favorite flag and returns the new value.
func (r *RecipeRepository) ToggleFavorite(id int64) (bool, error) {
	recipe, err := r.Get(id)
	if err != nil {
		return false, err
	}
	next := !recipe.IsFavorite
	if err := r.store.Recipes().SetFavorite(id, recipe.UserID, next); err != nil {
		return false, err
	}
	return next, nil
}

// SetRating stores a 0-5 rating.
func (r *RecipeRepository) SetRating(id int64, rating float64) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", types.ErrValidation)
	}
	return r.store.Recipes().SetRating(id, uid, rating)
}

// Delete removes a recipe; its junction rows cascade.
func (r *RecipeRepository) Delete(id int64) error {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return err
	}
	return r.store.Recipes().Delete(id, uid)
}

// WatchList re-runs the recipe list after every recipes or
// recipe_ingredients mutation. The user id is resolved once, at
// subscription time; a later user switch does not retarget the watch.
func (r *RecipeRepository) WatchList() (*Watch[[]types.Recipe], error) {
	uid, err := r.sess.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return newWatch(r.store, func() ([]types.Recipe, error) {
		return r.store.Recipes().ListByUser(uid)
	}, types.TableRecipes, types.TableRecipeIngredients), nil
}
