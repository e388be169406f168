package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// LoginStatus is the outcome of a login attempt.
type LoginStatus string

// Login outcomes. A store-level failure surfaces as LoginNetworkError;
// there is no real remote call behind it.
const (
	LoginSuccess            LoginStatus = "success"
	LoginInvalidCredentials LoginStatus = "invalid_credentials"
	LoginNetworkError       LoginStatus = "network_error"
)

// LoginResult carries the outcome and, on success, the logged-in user.
type LoginResult struct {
	Status LoginStatus
	User   types.User
}

// UserStats summarizes a user's data for the profile screen.
type UserStats struct {
	RecipeCount      int
	MealPlanCount    int
	GroceryItemCount int
}

// UserRepository implements registration, login, session restore, and
// profile management.
type UserRepository struct {
	store *sqlite.Store
	sess  *session.Manager
}

// validateRegistration enforces the field checks performed before any
// persistence call.
func validateRegistration(username, password, email string) error {
	if len(strings.TrimSpace(username)) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", types.ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", types.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", types.ErrValidation)
	}
	return nil
}

// Register creates an account. The username must not be in use; passwords
// are stored as bcrypt hashes, never in the clear.
func (r *UserRepository) Register(username, password, email, fullName string) (types.User, error) {
	username = strings.TrimSpace(username)
	if err := validateRegistration(username, password, email); err != nil {
		return types.User{}, err
	}

	_, err := r.store.Users().GetByUsername(username)
	if err == nil {
		return types.User{}, types.ErrUsernameTaken
	}
	if !errors.Is(err, types.ErrNotFound) {
		return types.User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := types.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FullName:     fullName,
		CreatedAt:    time.Now(),
	}
	id, err := r.store.Users().Insert(u)
	if err != nil {
		return types.User{}, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return u, nil
}

// Login verifies the credentials and, on success, begins a session. An
// unknown username and a wrong password are indistinguishable to the
// caller.
func (r *UserRepository) Login(username, password string) (LoginResult, error) {
	u, err := r.store.Users().GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, types.ErrNotFound) {
		return LoginResult{Status: LoginInvalidCredentials}, types.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{Status: LoginNetworkError}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{Status: LoginInvalidCredentials}, types.ErrInvalidCredentials
	}

	if err := r.sess.Begin(u); err != nil {
		return LoginResult{Status: LoginNetworkError}, fmt.Errorf("begin session: %w", err)
	}
	return LoginResult{Status: LoginSuccess, User: u}, nil
}

// Logout ends the current session. Logging out while logged out is not an
// error.
func (r *UserRepository) Logout() error {
	return r.sess.End()
}

// CurrentUser loads the logged-in user's row.
func (r *UserRepository) CurrentUser() (types.User, error) {
	id, err := r.sess.CurrentUserID()
	if err != nil {
		return types.User{}, err
	}
	return r.store.Users().Get(id)
}

// RestoreSession revalidates a persisted session on startup. A session
// pointing at a deleted user is ended and reported as logged out.
func (r *UserRepository) RestoreSession() (types.User, error) {
	id, err := r.sess.CurrentUserID()
	if err != nil {
		return types.User{}, err
	}
	u, err := r.store.Users().Get(id)
	if errors.Is(err, types.ErrNotFound) {
		_ = r.sess.End()
		return types.User{}, types.ErrNotLoggedIn
	}
	if err != nil {
		return types.User{}, err
	}
	return u, nil
}

// UpdateProfile edits the current user's display fields and preference
// tags, refreshing the session cache.
func (r *UserRepository) UpdateProfile(fullName, email string, calorieGoal *int, dietaryPreferences string) error {
	u, err := r.CurrentUser()
	if err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", types.ErrValidation)
	}

	u.FullName = fullName
	u.Email = email
	u.DailyCalorieGoal = calorieGoal
	u.DietaryPreferences = dietaryPreferences
	if err := r.store.Users().Update(u); err != nil {
		return err
	}
	return r.sess.UpdateProfile(u.Username, u.FullName, u.Email)
}

// ChangePassword verifies the current password and stores a new bcrypt
// hash.
func (r *UserRepository) ChangePassword(current, next string) error {
	u, err := r.CurrentUser()
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return types.ErrInvalidCredentials
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", types.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return r.store.Users().Update(u)
}

// Stats counts the current user's recipes, meal plans, and grocery items.
func (r *UserRepository) Stats() (UserStats, error) {
	id, err := r.sess.CurrentUserID()
	if err != nil {
		return UserStats{}, err
	}

	var stats UserStats
	if stats.RecipeCount, err = r.store.Recipes().Count(id); err != nil {
		return UserStats{}, err
	}
	if stats.MealPlanCount, err = r.store.MealPlans().Count(id); err != nil {
		return UserStats{}, err
	}
	if stats.GroceryItemCount, err = r.store.GroceryItems().Count(id); err != nil {
		return UserStats{}, err
	}
	return stats, nil
}
