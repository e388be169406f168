package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

func testUser() types.User {
	return types.User{
		ID:       3,
		Username: "walid",
		FullName: "Walid K",
		Email:    "walid@example.com",
	}
}

func TestFreshManagerIsLoggedOut(t *testing.T) {
	m, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.False(t, m.IsLoggedIn())
	_, err = m.CurrentUserID()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	assert.Empty(t, m.SessionID())
}

func TestBeginRecordsSession(t *testing.T) {
	m, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Begin(testUser()))

	assert.True(t, m.IsLoggedIn())
	id, err := m.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NotEmpty(t, m.SessionID())

	p := m.CachedProfile()
	assert.Equal(t, "walid", p.Username)
	assert.Equal(t, "Walid K", p.FullName)
	assert.Equal(t, "walid@example.com", p.Email)
}

func TestEndClearsSession(t *testing.T) {
	m, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Begin(testUser()))
	require.NoError(t, m.SetLastActiveScreen("recipes"))
	require.NoError(t, m.End())

	assert.False(t, m.IsLoggedIn())
	_, err = m.CurrentUserID()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	assert.Empty(t, m.SessionID())
	assert.Empty(t, m.LastActiveScreen())
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	m, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, m.Begin(testUser()))
	require.NoError(t, m.SetLastActiveScreen("grocery"))
	first := m.SessionID()

	m, err = Open(dir)
	require.NoError(t, err)
	assert.True(t, m.IsLoggedIn())
	id, err := m.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, first, m.SessionID(), "restore keeps the issued session id")
	assert.Equal(t, "grocery", m.LastActiveScreen())
}

func TestNewLoginIssuesNewSessionID(t *testing.T) {
	m, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Begin(testUser()))
	first := m.SessionID()
	require.NoError(t, m.End())
	require.NoError(t, m.Begin(testUser()))

	assert.NotEqual(t, first, m.SessionID())
}

func TestUpdateProfileRefreshesCache(t *testing.T) {
	m, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, m.Begin(testUser()))

	require.NoError(t, m.UpdateProfile("walid", "Walid Khalla", "wk@example.com"))

	p := m.CachedProfile()
	assert.Equal(t, "Walid Khalla", p.FullName)
	assert.Equal(t, "wk@example.com", p.Email)
}
