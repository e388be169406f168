// Nutrition commands: goal, set-goal, recipe, progress, summary.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

var (
	flagGoalCalories    float64
	flagGoalProtein     float64
	flagGoalCarbs       float64
	flagGoalFat         float64
	flagGoalFiber       float64
	flagGoalSugarLimit  float64
	flagGoalSodiumLimit float64
	flagGoalActivity    string
	flagGoalType        string
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Nutrition goals and progress",
}

var nutritionGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the daily nutrition goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		goal, err := repos.Nutrition.Goal()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(goal)
		}
		fmt.Printf("daily goal (%s, %s):\n", goal.ActivityLevel, goal.GoalType)
		fmt.Printf("  calories %.0f, protein %.0fg, carbs %.0fg, fat %.0fg, fiber %.0fg\n",
			goal.DailyCalories, goal.DailyProtein, goal.DailyCarbs, goal.DailyFat, goal.DailyFiber)
		fmt.Printf("  limits: sugar %.0fg, sodium %.0fmg\n",
			goal.DailySugarLimit, goal.DailySodiumLimit)
		return nil
	},
}

var nutritionSetGoalCmd = &cobra.Command{
	Use:   "set-goal",
	Short: "Replace the daily nutrition goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.Nutrition.SetGoal(types.NutritionGoal{
			DailyCalories:    flagGoalCalories,
			DailyProtein:     flagGoalProtein,
			DailyCarbs:       flagGoalCarbs,
			DailyFat:         flagGoalFat,
			DailyFiber:       flagGoalFiber,
			DailySugarLimit:  flagGoalSugarLimit,
			DailySodiumLimit: flagGoalSodiumLimit,
			ActivityLevel:    flagGoalActivity,
			GoalType:         flagGoalType,
		})
	},
}

var nutritionRecipeCmd = &cobra.Command{
	Use:   "recipe <recipe-id>",
	Short: "Show a recipe's total and per-serving nutrition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad recipe id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		rn, err := repos.Nutrition.ForRecipe(id)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(rn)
		}
		fmt.Printf("total:       %s\n", formatNutrition(rn.Total))
		fmt.Printf("per serving: %s\n", formatNutrition(rn.PerServing))
		return nil
	},
}

var nutritionProgressCmd = &cobra.Command{
	Use:   "progress <date>",
	Short: "Show one day's consumption against the goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		p, err := repos.Nutrition.DailyProgress(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(progressReport(p))
		}
		printProgress(p)
		return nil
	},
}

var nutritionSummaryCmd = &cobra.Command{
	Use:   "summary <start-date>",
	Short: "Show progress for each planned day in a week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		summary, err := repos.Nutrition.WeeklySummary(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			reports := make([]map[string]any, 0, len(summary))
			for _, p := range summary {
				reports = append(reports, progressReport(p))
			}
			return printJSON(reports)
		}
		for _, p := range summary {
			printProgress(p)
		}
		return nil
	},
}

func formatNutrition(n types.NutritionInfo) string {
	return fmt.Sprintf("%.0f cal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg fiber, %.1fg sugar, %.0fmg sodium",
		n.Calories, n.Protein, n.Carbs, n.Fat, n.Fiber, n.Sugar, n.Sodium)
}

func progressReport(p types.DailyNutritionProgress) map[string]any {
	return map[string]any{
		"date":                p.Date,
		"consumed":            p.Consumed,
		"remaining":           p.Remaining(),
		"calories_percentage": p.CaloriesPercentage(),
		"status":              p.OverallStatus(),
	}
}

func printProgress(p types.DailyNutritionProgress) {
	fmt.Printf("%s  %s  (%.0f%% of calorie goal, %s)\n",
		p.Date, formatNutrition(p.Consumed), p.CaloriesPercentage(), p.OverallStatus())
	if p.IsSugarExceeded() {
		fmt.Println("  over the sugar limit")
	}
	if p.IsSodiumExceeded() {
		fmt.Println("  over the sodium limit")
	}
}

func init() {
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalCalories, "calories", 2000, "daily calorie goal")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalProtein, "protein", 150, "daily protein goal in g")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalCarbs, "carbs", 250, "daily carb goal in g")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalFat, "fat", 65, "daily fat goal in g")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalFiber, "fiber", 25, "daily fiber goal in g")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalSugarLimit, "sugar-limit", 50, "daily sugar ceiling in g")
	nutritionSetGoalCmd.Flags().Float64Var(&flagGoalSodiumLimit, "sodium-limit", 2300, "daily sodium ceiling in mg")
	nutritionSetGoalCmd.Flags().StringVar(&flagGoalActivity, "activity", "moderate", "activity level")
	nutritionSetGoalCmd.Flags().StringVar(&flagGoalType, "goal-type", "maintain", "goal type")

	nutritionCmd.AddCommand(nutritionGoalCmd)
	nutritionCmd.AddCommand(nutritionSetGoalCmd)
	nutritionCmd.AddCommand(nutritionRecipeCmd)
	nutritionCmd.AddCommand(nutritionProgressCmd)
	nutritionCmd.AddCommand(nutritionSummaryCmd)
}
