package types

// NutritionInfo accumulates nutrient contributions. The zero value is the
// additive identity. Sodium is in mg, everything else in g except
// calories.
type NutritionInfo struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
	Sodium   float64
}

// Add combines two contributions pointwise across all seven fields.
func (n NutritionInfo) Add(other NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
		Fiber:    n.Fiber + other.Fiber,
		Sugar:    n.Sugar + other.Sugar,
		Sodium:   n.Sodium + other.Sodium,
	}
}

// Scale multiplies every field by the given factor.
func (n NutritionInfo) Scale(factor float64) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fat:      n.Fat * factor,
		Fiber:    n.Fiber * factor,
		Sugar:    n.Sugar * factor,
		Sodium:   n.Sodium * factor,
	}
}
