package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

// drainSignal waits briefly for one signal on the subscription channel.
func drainSignal(t *testing.T, sub *Subscription) bool {
	t.Helper()
	select {
	case _, ok := <-sub.C:
		return ok
	case <-time.After(time.Second):
		return false
	}
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	s := newTestStore(t)

	sub := s.Subscribe(types.TableUsers)
	defer sub.Cancel()

	_, err := s.Users().Insert(mustUser("watcher"))
	require.NoError(t, err)

	assert.True(t, drainSignal(t, sub))
}

func TestSubscribeIgnoresOtherTables(t *testing.T) {
	s := newTestStore(t)

	sub := s.Subscribe(types.TableMealPlans)
	defer sub.Cancel()

	_, err := s.Users().Insert(mustUser("watcher"))
	require.NoError(t, err)

	select {
	case <-sub.C:
		t.Fatal("users mutation must not signal a meal_plans watcher")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSignalsCoalesceForSlowConsumers(t *testing.T) {
	s := newTestStore(t)

	sub := s.Subscribe(types.TableGroceryItems)
	defer sub.Cancel()

	uid, err := s.Users().Insert(mustUser("shopper"))
	require.NoError(t, err)

	// A burst of mutations with no reader in between: the buffered channel
	// holds one pending signal and drops the rest.
	for i := 0; i < 5; i++ {
		_, err := s.GroceryItems().Insert(types.GroceryItem{
			UserID: uid, Name: "Item", Amount: 1, Unit: "g", Category: "Other",
		})
		require.NoError(t, err)
	}

	assert.True(t, drainSignal(t, sub), "at least one signal for the burst")
	select {
	case <-sub.C:
		// A second pending signal is allowed but nothing should block.
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRecipeDeleteSignalsJunctionWatchers(t *testing.T) {
	s := newTestStore(t)

	uid, err := s.Users().Insert(mustUser("cook"))
	require.NoError(t, err)
	rid, err := s.Recipes().Insert(mustRecipe(uid, "Stew"))
	require.NoError(t, err)

	sub := s.Subscribe(types.TableRecipeIngredients)
	defer sub.Cancel()

	require.NoError(t, s.Recipes().Delete(rid, uid))

	assert.True(t, drainSignal(t, sub), "cascade deletes must reach junction watchers")
}

func TestCancelClosesChannel(t *testing.T) {
	s := newTestStore(t)

	sub := s.Subscribe(types.TableUsers)
	sub.Cancel()
	sub.Cancel() // idempotent

	_, ok := <-sub.C
	assert.False(t, ok)

	// Mutations after cancel do not panic or signal.
	_, err := s.Users().Insert(mustUser("late"))
	require.NoError(t, err)
}

func TestStoreCloseClosesSubscriptions(t *testing.T) {
	s := newTestStore(t)

	sub := s.Subscribe(types.TableUsers)
	require.NoError(t, s.Close())

	_, ok := <-sub.C
	assert.False(t, ok)

	sub.Cancel() // still safe after close
}
