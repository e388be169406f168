package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func goalFor(t *testing.T) NutritionGoal {
	t.Helper()
	return DefaultNutritionGoal(1)
}

func TestDailyNutritionProgress_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		calories float64
		want     NutritionStatus
	}{
		{"under target at 79 percent", 1580, StatusUnderTarget},
		{"on target at 80 percent", 1600, StatusOnTarget},
		{"on target at 95 percent", 1900, StatusOnTarget},
		{"on target at 110 percent", 2200, StatusOnTarget},
		{"over target at 115 percent", 2300, StatusOverTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DailyNutritionProgress{
				Date:     "2025-03-10",
				Goals:    goalFor(t),
				Consumed: NutritionInfo{Calories: tt.calories},
			}
			assert.Equal(t, tt.want, p.OverallStatus())
		})
	}
}

func TestDailyNutritionProgress_Remaining(t *testing.T) {
	p := DailyNutritionProgress{
		Date:  "2025-03-10",
		Goals: goalFor(t),
		Consumed: NutritionInfo{
			Calories: 1500, Protein: 100, Carbs: 300, Fat: 30,
			Fiber: 10, Sugar: 60, Sodium: 2000,
		},
	}

	rem := p.Remaining()
	assert.Equal(t, 500.0, rem.Calories)
	assert.Equal(t, 50.0, rem.Protein)
	assert.Equal(t, 0.0, rem.Carbs, "overshoot clamps to zero")
	assert.Equal(t, 35.0, rem.Fat)
	assert.Equal(t, 15.0, rem.Fiber)
	assert.Equal(t, 0.0, rem.Sugar, "sugar remainder is against the limit")
	assert.Equal(t, 300.0, rem.Sodium, "sodium remainder is against the limit")
}

func TestDailyNutritionProgress_Percentages(t *testing.T) {
	p := DailyNutritionProgress{
		Goals:    goalFor(t),
		Consumed: NutritionInfo{Calories: 3000, Protein: 75},
	}

	assert.Equal(t, 100.0, p.CaloriesPercentage(), "percentage caps at 100")
	assert.Equal(t, 50.0, p.ProteinPercentage())
}

func TestDailyNutritionProgress_ExceededFlags(t *testing.T) {
	p := DailyNutritionProgress{
		Goals:    goalFor(t),
		Consumed: NutritionInfo{Calories: 2100, Sugar: 51, Sodium: 2300},
	}

	assert.True(t, p.IsCaloriesExceeded())
	assert.True(t, p.IsSugarExceeded())
	assert.False(t, p.IsSodiumExceeded(), "equal to the limit is not exceeded")
}

func TestNormalizeMealType(t *testing.T) {
	assert.Equal(t, MealTypeBreakfast, NormalizeMealType("breakfast"))
	assert.Equal(t, MealTypeDinner, NormalizeMealType(" DINNER "))
	assert.Equal(t, "Brunch", NormalizeMealType("Brunch"))
}
