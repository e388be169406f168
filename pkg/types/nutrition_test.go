package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNutritionInfo_Add(t *testing.T) {
	a := NutritionInfo{Calories: 100, Protein: 10, Carbs: 20, Fat: 5, Fiber: 2, Sugar: 3, Sodium: 150}
	b := NutritionInfo{Calories: 50, Protein: 4, Carbs: 8, Fat: 1, Fiber: 0.5, Sugar: 1.5, Sodium: 30}
	c := NutritionInfo{Calories: 25, Protein: 2, Carbs: 4, Fat: 0.5, Fiber: 0.25, Sugar: 0.75, Sodium: 15}

	t.Run("pointwise over all seven fields", func(t *testing.T) {
		sum := a.Add(b)
		assert.Equal(t, 150.0, sum.Calories)
		assert.Equal(t, 14.0, sum.Protein)
		assert.Equal(t, 28.0, sum.Carbs)
		assert.Equal(t, 6.0, sum.Fat)
		assert.Equal(t, 2.5, sum.Fiber)
		assert.Equal(t, 4.5, sum.Sugar)
		assert.Equal(t, 180.0, sum.Sodium)
	})

	t.Run("commutative", func(t *testing.T) {
		assert.Equal(t, a.Add(b), b.Add(a))
	})

	t.Run("associative", func(t *testing.T) {
		assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
	})

	t.Run("zero value is the identity", func(t *testing.T) {
		assert.Equal(t, a, NutritionInfo{}.Add(a))
		assert.Equal(t, a, a.Add(NutritionInfo{}))
	})
}

func TestNutritionInfo_Scale(t *testing.T) {
	n := NutritionInfo{Calories: 100, Protein: 10, Carbs: 20, Fat: 5, Fiber: 2, Sugar: 3, Sodium: 150}

	scaled := n.Scale(2.5)
	assert.Equal(t, 250.0, scaled.Calories)
	assert.Equal(t, 25.0, scaled.Protein)
	assert.Equal(t, 50.0, scaled.Carbs)
	assert.Equal(t, 12.5, scaled.Fat)
	assert.Equal(t, 5.0, scaled.Fiber)
	assert.Equal(t, 7.5, scaled.Sugar)
	assert.Equal(t, 375.0, scaled.Sodium)

	assert.Equal(t, NutritionInfo{}, n.Scale(0))
}
