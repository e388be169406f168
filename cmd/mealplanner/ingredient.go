// Ingredient catalog commands: list, search, show, add.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

var (
	flagIngredientCategory string
	flagIngredientUnit     string
	flagCalories           float64
	flagProtein            float64
	flagCarbs              float64
	flagFat                float64
	flagFiber              float64
	flagSugar              float64
	flagSodium             float64
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Browse and extend the shared ingredient catalog",
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		var ingredients []types.Ingredient
		if flagIngredientCategory != "" {
			ingredients, err = repos.Ingredients.ByCategory(flagIngredientCategory)
		} else {
			ingredients, err = repos.Ingredients.All()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(ingredients)
		}
		for _, ing := range ingredients {
			fmt.Printf("%4d  %-24s %-12s %6.0f cal/100g\n",
				ing.ID, ing.Name, ing.Category, ing.CaloriesPer100g)
		}
		return nil
	},
}

var ingredientSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		ingredients, err := repos.Ingredients.Search(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(ingredients)
		}
		for _, ing := range ingredients {
			fmt.Printf("%4d  %s\n", ing.ID, ing.Name)
		}
		return nil
	},
}

var ingredientShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad ingredient id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		ing, err := repos.Ingredients.Get(id)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(ing)
		}
		fmt.Printf("%s (%s, default unit %s)\n", ing.Name, ing.Category, ing.DefaultUnit)
		fmt.Printf("per 100g: %.0f cal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			ing.CaloriesPer100g, ing.ProteinPer100g, ing.CarbsPer100g, ing.FatPer100g)
		fmt.Printf("          %.1fg fiber, %.1fg sugar, %.0fmg sodium\n",
			ing.FiberPer100g, ing.SugarPer100g, ing.SodiumPer100g)
		return nil
	},
}

var ingredientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		id, err := repos.Ingredients.Create(types.Ingredient{
			Name:            args[0],
			Category:        flagIngredientCategory,
			DefaultUnit:     flagIngredientUnit,
			CaloriesPer100g: flagCalories,
			ProteinPer100g:  flagProtein,
			CarbsPer100g:    flagCarbs,
			FatPer100g:      flagFat,
			FiberPer100g:    flagFiber,
			SugarPer100g:    flagSugar,
			SodiumPer100g:   flagSodium,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added ingredient %d\n", id)
		return nil
	},
}

func init() {
	ingredientListCmd.Flags().StringVar(&flagIngredientCategory, "category", "", "filter by category")

	ingredientAddCmd.Flags().StringVar(&flagIngredientCategory, "category", "Other", "catalog category")
	ingredientAddCmd.Flags().StringVar(&flagIngredientUnit, "unit", "g", "default unit")
	ingredientAddCmd.Flags().Float64Var(&flagCalories, "calories", 0, "calories per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagProtein, "protein", 0, "protein g per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagCarbs, "carbs", 0, "carbs g per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagFat, "fat", 0, "fat g per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagFiber, "fiber", 0, "fiber g per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagSugar, "sugar", 0, "sugar g per 100g")
	ingredientAddCmd.Flags().Float64Var(&flagSodium, "sodium", 0, "sodium mg per 100g")

	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientSearchCmd)
	ingredientCmd.AddCommand(ingredientShowCmd)
	ingredientCmd.AddCommand(ingredientAddCmd)
}
