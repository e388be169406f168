package types

import (
	"math"
	"time"
)

// NutritionGoal holds a user's daily targets and limits. At most one row
// exists per user; inserts use replace-on-conflict semantics. Sugar and
// sodium are ceilings, the other five fields are floors.
type NutritionGoal struct {
	UserID           int64
	DailyCalories    float64
	DailyProtein     float64 // g
	DailyCarbs       float64 // g
	DailyFat         float64 // g
	DailyFiber       float64 // g
	DailySugarLimit  float64 // g
	DailySodiumLimit float64 // mg
	ActivityLevel    string  // sedentary, light, moderate, active, very_active
	GoalType         string  // lose_weight, maintain, gain_weight, gain_muscle
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultNutritionGoal returns the goal row seeded for a user who has not
// configured one.
func DefaultNutritionGoal(userID int64) NutritionGoal {
	now := time.Now()
	return NutritionGoal{
		UserID:           userID,
		DailyCalories:    2000,
		DailyProtein:     150,
		DailyCarbs:       250,
		DailyFat:         65,
		DailyFiber:       25,
		DailySugarLimit:  50,
		DailySodiumLimit: 2300,
		ActivityLevel:    "moderate",
		GoalType:         "maintain",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NutritionStatus classifies a day's calorie intake against the goal.
type NutritionStatus string

// Overall status values. UNDER_TARGET below 80% of the calorie goal,
// OVER_TARGET above 110%, ON_TARGET in between.
const (
	StatusUnderTarget NutritionStatus = "UNDER_TARGET"
	StatusOnTarget    NutritionStatus = "ON_TARGET"
	StatusOverTarget  NutritionStatus = "OVER_TARGET"
)

// DailyNutritionProgress reports consumption against a user's goal for one
// date.
type DailyNutritionProgress struct {
	Date     string // YYYY-MM-DD
	Goals    NutritionGoal
	Consumed NutritionInfo
}

// Remaining returns max(0, goal - consumed) per field. Sugar and sodium
// remainders are computed against their limits.
func (p DailyNutritionProgress) Remaining() NutritionInfo {
	return NutritionInfo{
		Calories: math.Max(0, p.Goals.DailyCalories-p.Consumed.Calories),
		Protein:  math.Max(0, p.Goals.DailyProtein-p.Consumed.Protein),
		Carbs:    math.Max(0, p.Goals.DailyCarbs-p.Consumed.Carbs),
		Fat:      math.Max(0, p.Goals.DailyFat-p.Consumed.Fat),
		Fiber:    math.Max(0, p.Goals.DailyFiber-p.Consumed.Fiber),
		Sugar:    math.Max(0, p.Goals.DailySugarLimit-p.Consumed.Sugar),
		Sodium:   math.Max(0, p.Goals.DailySodiumLimit-p.Consumed.Sodium),
	}
}

// percentOf returns consumed/goal as a percentage capped at 100.
func percentOf(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, consumed/goal*100)
}

// CaloriesPercentage returns the calorie goal percentage, capped at 100.
func (p DailyNutritionProgress) CaloriesPercentage() float64 {
	return percentOf(p.Consumed.Calories, p.Goals.DailyCalories)
}

// ProteinPercentage returns the protein goal percentage, capped at 100.
func (p DailyNutritionProgress) ProteinPercentage() float64 {
	return percentOf(p.Consumed.Protein, p.Goals.DailyProtein)
}

// CarbsPercentage returns the carbs goal percentage, capped at 100.
func (p DailyNutritionProgress) CarbsPercentage() float64 {
	return percentOf(p.Consumed.Carbs, p.Goals.DailyCarbs)
}

// FatPercentage returns the fat goal percentage, capped at 100.
func (p DailyNutritionProgress) FatPercentage() float64 {
	return percentOf(p.Consumed.Fat, p.Goals.DailyFat)
}

// FiberPercentage returns the fiber goal percentage, capped at 100.
func (p DailyNutritionProgress) FiberPercentage() float64 {
	return percentOf(p.Consumed.Fiber, p.Goals.DailyFiber)
}

// IsSugarExceeded reports whether consumed sugar passed the daily limit.
func (p DailyNutritionProgress) IsSugarExceeded() bool {
	return p.Consumed.Sugar > p.Goals.DailySugarLimit
}

// IsSodiumExceeded reports whether consumed sodium passed the daily limit.
func (p DailyNutritionProgress) IsSodiumExceeded() bool {
	return p.Consumed.Sodium > p.Goals.DailySodiumLimit
}

// IsCaloriesExceeded reports whether consumed calories passed the goal.
func (p DailyNutritionProgress) IsCaloriesExceeded() bool {
	return p.Consumed.Calories > p.Goals.DailyCalories
}

// OverallStatus classifies the day by uncapped calorie percentage.
func (p DailyNutritionProgress) OverallStatus() NutritionStatus {
	if p.Goals.DailyCalories <= 0 {
		return StatusOnTarget
	}
	pct := p.Consumed.Calories / p.Goals.DailyCalories * 100
	switch {
	case pct < 80:
		return StatusUnderTarget
	case pct > 110:
		return StatusOverTarget
	default:
		return StatusOnTarget
	}
}
