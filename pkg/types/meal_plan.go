package types

import (
	"strings"
	"time"
)

// Meal types. Matching is case-insensitive; "Unknown" appears on rows
// migrated from the pre-v2 schema, which had no meal type.
const (
	MealTypeBreakfast = "Breakfast"
	MealTypeLunch     = "Lunch"
	MealTypeDinner    = "Dinner"
	MealTypeSnack     = "Snack"
	MealTypeUnknown   = "Unknown"
)

// NormalizeMealType maps a free-form meal type string to its canonical
// form. Unrecognized values are returned trimmed but otherwise unchanged.
func NormalizeMealType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return MealTypeBreakfast
	case "lunch":
		return MealTypeLunch
	case "dinner":
		return MealTypeDinner
	case "snack":
		return MealTypeSnack
	default:
		return strings.TrimSpace(s)
	}
}

// MealPlan schedules a recipe onto a meal slot, a (date, meal type) pair.
// Slots are not unique: multiple recipes may occupy the same slot.
type MealPlan struct {
	ID        int64
	UserID    int64
	Date      string // YYYY-MM-DD
	MealType  string
	RecipeID  int64
	Servings  int
	Notes     *string
	CreatedAt time.Time
}
