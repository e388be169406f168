package types

import (
	"strings"
	"time"
)

// User is an account in the meal planner. Usernames are unique by
// convention; the check happens at registration, not in the schema.
type User struct {
	ID                 int64
	Username           string
	PasswordHash       string // bcrypt hash of the password
	Email              string
	FullName           string
	CreatedAt          time.Time
	DailyCalorieGoal   *int
	DietaryPreferences string // comma-separated tags, e.g. "vegetarian,gluten-free"
}

// Preferences splits the comma-separated dietary preference tags.
// Returns an empty slice when no preferences are set.
func (u *User) Preferences() []string {
	if strings.TrimSpace(u.DietaryPreferences) == "" {
		return nil
	}
	parts := strings.Split(u.DietaryPreferences, ",")
	prefs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	return prefs
}
