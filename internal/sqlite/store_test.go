package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// newTestStore opens a fresh store in a temp directory and closes it when
// the test finishes.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesFreshStore(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, DatabaseFileName))
	require.NoError(t, err)

	v, err := s.userVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)
}

func TestFreshStoreSeedsStarterIngredients(t *testing.T) {
	s := newTestStore(t)

	count, err := s.Ingredients().Count()
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	results, err := s.Ingredients().Search("Chicken")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Chicken Breast", results[0].Name)
	assert.Equal(t, 165.0, results[0].CaloriesPer100g)
}

func TestReopenDoesNotReseed(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Ingredients().Delete(1))
	require.NoError(t, s.Close())

	s, err = Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Ingredients().Count()
	require.NoError(t, err)
	assert.Equal(t, 9, count, "seeding must only happen on an empty catalog")
}

func TestDataPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	id, err := s.Users().Insert(types.User{Username: "maria", PasswordHash: "x", Email: "maria@example.com"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	u, err := s.Users().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "maria", u.Username)
}

func TestCloseIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestOperationsAfterCloseReturnStoreClosed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Users().Get(1)
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	_, err = s.Recipes().Insert(types.Recipe{UserID: 1, Title: "x", Instructions: "x"})
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	_, err = s.Ingredients().All()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestNilLoggerIsAccepted(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
