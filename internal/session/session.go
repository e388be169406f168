// Package session persists login state between runs: the logged-in flag,
// the current user id, cached profile fields, and a last-active-screen
// marker. It replaces ad hoc process-wide globals with an explicit Manager
// handed to repository constructors.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// SessionFileName is the preference file created inside the config
// directory.
const SessionFileName = "session.yaml"

// Preference keys.
const (
	keyLoggedIn         = "is_logged_in"
	keyUserID           = "current_user_id"
	keyUsername         = "username"
	keyFullName         = "full_name"
	keyEmail            = "email"
	keySessionID        = "session_id"
	keyLastActiveScreen = "last_active_screen"
)

// Manager is the persisted key-value session store. State is re-read from
// the file on every query, so a concurrent writer (another process, a test
// staging state by hand) is picked up immediately by the next call.
type Manager struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Open loads (or creates) the session file inside configDir.
func Open(configDir string) (*Manager, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(configDir, SessionFileName)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(keyLoggedIn, false)
	v.SetDefault(keyUserID, int64(0))

	// First run: a missing file is not an error.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	return &Manager{v: v, path: path}, nil
}

// reload re-reads the file, keeping defaults when it does not exist yet.
// The caller must hold m.mu.
func (m *Manager) reload() {
	_ = m.v.ReadInConfig()
}

// save writes the current state back to the file.
// The caller must hold m.mu.
func (m *Manager) save() error {
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Begin records a successful login: the user becomes current, profile
// fields are cached for display, and a fresh session id is issued.
func (m *Manager) Begin(u types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(keyLoggedIn, true)
	m.v.Set(keyUserID, u.ID)
	m.v.Set(keyUsername, u.Username)
	m.v.Set(keyFullName, u.FullName)
	m.v.Set(keyEmail, u.Email)
	m.v.Set(keySessionID, uuid.NewString())
	return m.save()
}

// End clears the session on logout. The last-active-screen marker is
// cleared with it.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(keyLoggedIn, false)
	m.v.Set(keyUserID, int64(0))
	m.v.Set(keyUsername, "")
	m.v.Set(keyFullName, "")
	m.v.Set(keyEmail, "")
	m.v.Set(keySessionID, "")
	m.v.Set(keyLastActiveScreen, "")
	return m.save()
}

// IsLoggedIn reports whether a session is active.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload()
	return m.v.GetBool(keyLoggedIn)
}

// CurrentUserID returns the logged-in user's id. Returns ErrNotLoggedIn
// when no session is active.
func (m *Manager) CurrentUserID() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload()

	if !m.v.GetBool(keyLoggedIn) {
		return 0, types.ErrNotLoggedIn
	}
	id := m.v.GetInt64(keyUserID)
	if id <= 0 {
		return 0, types.ErrNotLoggedIn
	}
	return id, nil
}

// SessionID returns the id issued at login, or empty when logged out.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload()
	return m.v.GetString(keySessionID)
}

// Profile holds the cached display fields of the logged-in user.
type Profile struct {
	Username string
	FullName string
	Email    string
}

// CachedProfile returns the profile fields cached at login. They may lag
// the store if the profile was edited elsewhere; UpdateProfile refreshes
// them.
func (m *Manager) CachedProfile() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload()
	return Profile{
		Username: m.v.GetString(keyUsername),
		FullName: m.v.GetString(keyFullName),
		Email:    m.v.GetString(keyEmail),
	}
}

// UpdateProfile refreshes the cached profile fields after a profile edit.
func (m *Manager) UpdateProfile(username, fullName, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(keyUsername, username)
	m.v.Set(keyFullName, fullName)
	m.v.Set(keyEmail, email)
	return m.save()
}

// SetLastActiveScreen records where the user was, for session restore.
func (m *Manager) SetLastActiveScreen(screen string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(keyLastActiveScreen, screen)
	return m.save()
}

// LastActiveScreen returns the marker recorded by SetLastActiveScreen.
func (m *Manager) LastActiveScreen() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reload()
	return m.v.GetString(keyLastActiveScreen)
}
