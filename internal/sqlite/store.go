package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// DatabaseFileName is the store file created inside the data directory.
const DatabaseFileName = "meal_planner.db"

// Store is the file-backed SQLite database behind the meal planner.
// Opening a store runs the migration chain synchronously, blocking first
// access until the schema is at the current version. The connection pool
// is capped at one connection, so SQLite serializes concurrent writers and
// last-write-wins applies to concurrent updates of the same row.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	log    *zap.Logger
	closed bool

	watchMu  sync.Mutex
	watchers map[string][]chan struct{}

	users             *UsersTable
	recipes           *RecipesTable
	ingredients       *IngredientsTable
	recipeIngredients *RecipeIngredientsTable
	mealPlans         *MealPlansTable
	groceryItems      *GroceryItemsTable
	nutritionGoals    *NutritionGoalsTable
}

// Open opens (or creates) the store at dataDir/meal_planner.db and brings
// its schema to the current version. A nil logger disables logging.
func Open(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, DatabaseFileName)
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:       db,
		path:     path,
		log:      log,
		watchers: make(map[string][]chan struct{}),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	s.users = &UsersTable{store: s}
	s.recipes = &RecipesTable{store: s}
	s.ingredients = &IngredientsTable{store: s}
	s.recipeIngredients = &RecipeIngredientsTable{store: s}
	s.mealPlans = &MealPlansTable{store: s}
	s.groceryItems = &GroceryItemsTable{store: s}
	s.nutritionGoals = &NutritionGoalsTable{store: s}

	return s, nil
}

// openDatabase opens the SQLite file with foreign keys enabled and a
// single-connection pool. Cascade deletes on recipe_ingredients depend on
// the foreign_keys pragma.
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// Close releases the database connection. Close is idempotent; operations
// on a closed store return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.watchMu.Lock()
	for _, chans := range s.watchers {
		for _, ch := range chans {
			close(ch)
		}
	}
	s.watchers = make(map[string][]chan struct{})
	s.watchMu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// checkOpen returns ErrStoreClosed if the store has been closed.
// The caller must hold s.mu (read or write lock).
func (s *Store) checkOpen() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	return nil
}

// Table accessors.

// Users returns the users table accessor.
func (s *Store) Users() *UsersTable { return s.users }

// Recipes returns the recipes table accessor.
func (s *Store) Recipes() *RecipesTable { return s.recipes }

// Ingredients returns the ingredient catalog accessor.
func (s *Store) Ingredients() *IngredientsTable { return s.ingredients }

// RecipeIngredients returns the recipe_ingredients junction accessor.
func (s *Store) RecipeIngredients() *RecipeIngredientsTable { return s.recipeIngredients }

// MealPlans returns the meal_plans table accessor.
func (s *Store) MealPlans() *MealPlansTable { return s.mealPlans }

// GroceryItems returns the grocery_items table accessor.
func (s *Store) GroceryItems() *GroceryItemsTable { return s.groceryItems }

// NutritionGoals returns the nutrition_goals table accessor.
func (s *Store) NutritionGoals() *NutritionGoalsTable { return s.nutritionGoals }

// timestamp helpers: the schema stores times as integer Unix milliseconds.

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
