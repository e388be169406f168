package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// UsersTable provides query and mutation operations on the users table.
type UsersTable struct {
	store *Store
}

const userColumns = "id, username, password_hash, email, created_at, daily_calorie_goal, dietary_preferences, full_name"

// scanUser hydrates one users row.
func scanUser(row interface{ Scan(...any) error }) (types.User, error) {
	var (
		u       types.User
		created int64
		goal    sql.NullInt64
		prefs   sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &created, &goal, &prefs, &u.FullName)
	if err != nil {
		return types.User{}, err
	}
	u.CreatedAt = fromMillis(created)
	if goal.Valid {
		g := int(goal.Int64)
		u.DailyCalorieGoal = &g
	}
	if prefs.Valid {
		u.DietaryPreferences = prefs.String
	}
	return u, nil
}

// Get retrieves a user by ID. Returns ErrNotFound if no row matches.
func (t *UsersTable) Get(id int64) (types.User, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.User{}, err
	}
	if id <= 0 {
		return types.User{}, types.ErrInvalidID
	}

	row := t.store.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return types.User{}, types.ErrNotFound
	}
	if err != nil {
		return types.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername retrieves a user by username. Returns ErrNotFound if no
// row matches.
func (t *UsersTable) GetByUsername(username string) (types.User, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return types.User{}, err
	}

	row := t.store.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return types.User{}, types.ErrNotFound
	}
	if err != nil {
		return types.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

// All returns every user, ordered by creation time.
func (t *UsersTable) All() ([]types.User, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := t.store.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Insert persists a user with replace-on-conflict semantics and returns
// the generated ID.
func (t *UsersTable) Insert(u types.User) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var goal sql.NullInt64
	if u.DailyCalorieGoal != nil {
		goal = sql.NullInt64{Int64: int64(*u.DailyCalorieGoal), Valid: true}
	}
	res, err := t.store.db.Exec(
		"INSERT OR REPLACE INTO users (username, password_hash, email, created_at, daily_calorie_goal, dietary_preferences, full_name) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.Username, u.PasswordHash, u.Email, toMillis(u.CreatedAt), goal, nullString(u.DietaryPreferences), u.FullName)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user insert id: %w", err)
	}
	t.store.notify(types.TableUsers)
	return id, nil
}

// Update overwrites a user's mutable columns.
func (t *UsersTable) Update(u types.User) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}
	if u.ID <= 0 {
		return types.ErrInvalidID
	}

	var goal sql.NullInt64
	if u.DailyCalorieGoal != nil {
		goal = sql.NullInt64{Int64: int64(*u.DailyCalorieGoal), Valid: true}
	}
	res, err := t.store.db.Exec(
		"UPDATE users SET username = ?, password_hash = ?, email = ?, daily_calorie_goal = ?, dietary_preferences = ?, full_name = ? WHERE id = ?",
		u.Username, u.PasswordHash, u.Email, goal, nullString(u.DietaryPreferences), u.FullName, u.ID)
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	t.store.notify(types.TableUsers)
	return nil
}

// DeleteAll removes every user row.
func (t *UsersTable) DeleteAll() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.checkOpen(); err != nil {
		return err
	}

	if _, err := t.store.db.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	t.store.notify(types.TableUsers)
	return nil
}

// Count returns the number of registered users.
func (t *UsersTable) Count() (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if err := t.store.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := t.store.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// nullString wraps a string as a nullable column value, storing NULL for
// the empty string.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullStringPtr wraps an optional string column value.
func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringPtr converts a nullable column back to an optional string.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
