package types

import "time"

// Recipe difficulty levels.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe is a user-owned recipe. Ingredients are not embedded; they live
// in the recipe_ingredients junction table (schema v6).
type Recipe struct {
	ID                 int64
	UserID             int64
	Title              string
	Description        *string
	Instructions       string
	PrepTimeMinutes    int
	CookTimeMinutes    int
	Servings           int
	CaloriesPerServing *int
	Category           string
	DifficultyLevel    string // Easy, Medium, Hard
	ImageURL           *string
	IsFavorite         bool
	Rating             float64 // 0-5
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TotalTimeMinutes returns prep plus cook time.
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// RecipeWithIngredients pairs a recipe with its junction rows, ordered by
// order index.
type RecipeWithIngredients struct {
	Recipe      Recipe
	Ingredients []RecipeIngredient
}
