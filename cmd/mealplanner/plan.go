// Meal plan commands: add, list, week, servings, clear, delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagPlanServings int
	flagPlanNotes    string
	flagPlanMealType string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Schedule recipes onto meal slots",
}

var planAddCmd = &cobra.Command{
	Use:   "add <date> <meal-type> <recipe-id>",
	Short: "Plan a recipe for a date and meal type",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipeID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad recipe id %q", args[2])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		var notes *string
		if flagPlanNotes != "" {
			notes = &flagPlanNotes
		}
		id, err := repos.MealPlans.Plan(args[0], args[1], recipeID, flagPlanServings, notes)
		if err != nil {
			return err
		}
		fmt.Printf("planned meal %d\n", id)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list <date>",
	Short: "List planned meals for one date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		plans, err := repos.MealPlans.ForDate(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(plans)
		}
		for _, p := range plans {
			fmt.Printf("%4d  %-10s recipe %d, %d servings  %s\n",
				p.ID, p.MealType, p.RecipeID, p.Servings, strOrDash(p.Notes))
		}
		return nil
	},
}

var planWeekCmd = &cobra.Command{
	Use:   "week <start-date>",
	Short: "List planned meals for the week starting at a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		plans, err := repos.MealPlans.Week(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(plans)
		}
		lastDate := ""
		for _, p := range plans {
			if p.Date != lastDate {
				fmt.Println(p.Date)
				lastDate = p.Date
			}
			fmt.Printf("  %4d  %-10s recipe %d, %d servings\n",
				p.ID, p.MealType, p.RecipeID, p.Servings)
		}
		return nil
	},
}

var planServingsCmd = &cobra.Command{
	Use:   "servings <plan-id> <count>",
	Short: "Change a planned meal's serving count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad plan id %q", args[0])
		}
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad serving count %q", args[1])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.MealPlans.UpdateServings(id, count)
	},
}

var planClearCmd = &cobra.Command{
	Use:   "clear <date>",
	Short: "Remove planned meals for a date, optionally one slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		if flagPlanMealType != "" {
			return repos.MealPlans.ClearSlot(args[0], flagPlanMealType)
		}
		return repos.MealPlans.ClearDate(args[0])
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Remove one planned meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad plan id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.MealPlans.Delete(id)
	},
}

func init() {
	planAddCmd.Flags().IntVar(&flagPlanServings, "servings", 1, "servings to plan")
	planAddCmd.Flags().StringVar(&flagPlanNotes, "notes", "", "free-form note")

	planClearCmd.Flags().StringVar(&flagPlanMealType, "meal-type", "", "only clear this meal type")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planWeekCmd)
	planCmd.AddCommand(planServingsCmd)
	planCmd.AddCommand(planClearCmd)
	planCmd.AddCommand(planDeleteCmd)
}
