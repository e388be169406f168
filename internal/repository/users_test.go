package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
	"github.com/walidkhalla/mealplanner/pkg/types"
)

// newTestRepos wires repositories over a fresh store and session in temp
// directories.
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	store, err := sqlite.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sess, err := session.Open(t.TempDir())
	require.NoError(t, err)

	return New(store, sess)
}

// registerAndLogin creates an account and begins a session for it.
func registerAndLogin(t *testing.T, repos *Repositories, username string) types.User {
	t.Helper()
	u, err := repos.Users.Register(username, "secret123", username+"@example.com", username)
	require.NoError(t, err)
	res, err := repos.Users.Login(username, "secret123")
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Status)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	repos := newTestRepos(t)

	u, err := repos.Users.Register("walid", "secret123", "walid@example.com", "Walid K")
	require.NoError(t, err)
	require.Positive(t, u.ID)

	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
}

func TestRegisterValidation(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Users.Register("ab", "secret123", "a@b.com", "")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = repos.Users.Register("walid", "short", "a@b.com", "")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = repos.Users.Register("walid", "secret123", "not-an-email", "")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Users.Register("walid", "secret123", "a@b.com", "")
	require.NoError(t, err)

	_, err = repos.Users.Register("walid", "different1", "c@d.com", "")
	assert.ErrorIs(t, err, types.ErrUsernameTaken)
}

func TestLoginOutcomes(t *testing.T) {
	repos := newTestRepos(t)
	_, err := repos.Users.Register("walid", "secret123", "a@b.com", "")
	require.NoError(t, err)

	// Wrong password and unknown username are indistinguishable.
	res, err := repos.Users.Login("walid", "wrongpass")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.Equal(t, LoginInvalidCredentials, res.Status)

	res, err = repos.Users.Login("nobody", "secret123")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.Equal(t, LoginInvalidCredentials, res.Status)

	res, err = repos.Users.Login("walid", "secret123")
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Status)
	assert.Equal(t, "walid", res.User.Username)
}

func TestLogoutEndsScope(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "walid")

	require.NoError(t, repos.Users.Logout())

	_, err := repos.Recipes.List()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	_, err = repos.Users.CurrentUser()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
}

func TestRestoreSession(t *testing.T) {
	repos := newTestRepos(t)
	u := registerAndLogin(t, repos, "walid")

	restored, err := repos.Users.RestoreSession()
	require.NoError(t, err)
	assert.Equal(t, u.ID, restored.ID)
}

func TestRestoreSessionForDeletedUserLogsOut(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "walid")

	// The account disappears underneath the persisted session.
	require.NoError(t, repos.Users.store.Users().DeleteAll())

	_, err := repos.Users.RestoreSession()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	_, err = repos.Users.CurrentUser()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
}

func TestUpdateProfile(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "walid")

	goal := 1900
	require.NoError(t, repos.Users.UpdateProfile("Walid Khalla", "wk@example.com", &goal, "vegetarian"))

	u, err := repos.Users.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "Walid Khalla", u.FullName)
	assert.Equal(t, "wk@example.com", u.Email)
	require.NotNil(t, u.DailyCalorieGoal)
	assert.Equal(t, 1900, *u.DailyCalorieGoal)
	assert.Equal(t, []string{"vegetarian"}, u.Preferences())
}

func TestChangePassword(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "walid")

	assert.ErrorIs(t, repos.Users.ChangePassword("wrongpass", "newsecret1"), types.ErrInvalidCredentials)
	require.NoError(t, repos.Users.ChangePassword("secret123", "newsecret1"))

	res, err := repos.Users.Login("walid", "newsecret1")
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Status)
}

func TestStatsCountOwnData(t *testing.T) {
	repos := newTestRepos(t)
	registerAndLogin(t, repos, "walid")

	rid, err := repos.Recipes.Create(types.Recipe{
		Title: "Toast", Instructions: "Toast it.", Servings: 1,
		Category: "Breakfast", DifficultyLevel: types.DifficultyEasy,
	}, nil)
	require.NoError(t, err)
	_, err = repos.MealPlans.Plan("2024-06-01", "breakfast", rid, 1, nil)
	require.NoError(t, err)
	_, err = repos.Grocery.AddManual("Butter", 1, "piece", "Dairy")
	require.NoError(t, err)

	stats, err := repos.Users.Stats()
	require.NoError(t, err)
	assert.Equal(t, UserStats{RecipeCount: 1, MealPlanCount: 1, GroceryItemCount: 1}, stats)
}
