package sqlite

// This file seeds the shared ingredient catalog with a starter set of
// common items and plausible per-100g macros.

import (
	"database/sql"

	"go.uber.org/zap"
)

// starterIngredient describes one row of the seeded catalog.
type starterIngredient struct {
	name     string
	category string
	unit     string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
	fiber    float64
	sugar    float64
	sodium   float64
}

// starterIngredients is the fixed catalog seeded into new stores and by
// the 4→5 migration step.
var starterIngredients = []starterIngredient{
	{"Chicken Breast", "Protein", "g", 165, 31, 0, 3.6, 0, 0, 74},
	{"Rice", "Grains", "g", 130, 2.7, 28, 0.3, 0.4, 0.1, 5},
	{"Broccoli", "Vegetables", "g", 34, 2.8, 7, 0.4, 2.6, 1.5, 33},
	{"Tomato", "Vegetables", "g", 18, 0.9, 3.9, 0.2, 1.2, 2.6, 5},
	{"Onion", "Vegetables", "g", 40, 1.1, 9.3, 0.1, 1.7, 4.2, 4},
	{"Olive Oil", "Fats", "ml", 884, 0, 0, 100, 0, 0, 2},
	{"Eggs", "Protein", "piece", 155, 13, 1.1, 11, 0, 1.1, 124},
	{"Milk", "Dairy", "ml", 42, 3.4, 5, 1, 0, 5, 44},
	{"Bread", "Grains", "slice", 265, 9, 49, 3.2, 2.7, 5, 491},
	{"Avocado", "Fruits", "piece", 160, 2, 9, 15, 7, 0.7, 7},
}

// seedStarterIngredients inserts the starter catalog. Seeding only runs
// when the ingredients table is empty, so re-running a migration step or
// reopening the store never duplicates rows. Failures are logged and do
// not abort the caller.
func seedStarterIngredients(db *sql.DB, log *zap.Logger) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM ingredients").Scan(&count); err != nil {
		log.Warn("count ingredients before seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	now := nowMillis()
	for _, ing := range starterIngredients {
		_, err := db.Exec(
			"INSERT INTO ingredients (name, category, default_unit, calories_per_100g, protein_per_100g, "+
				"carbs_per_100g, fat_per_100g, fiber_per_100g, sugar_per_100g, sodium_per_100g, created_at, updated_at) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			ing.name, ing.category, ing.unit, ing.calories, ing.protein, ing.carbs,
			ing.fat, ing.fiber, ing.sugar, ing.sodium, now, now)
		if err != nil {
			log.Warn("seed ingredient", zap.String("name", ing.name), zap.Error(err))
		}
	}
}
