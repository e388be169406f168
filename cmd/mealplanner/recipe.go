// Recipe commands: list, show, add, search, favorite, rate, delete.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walidkhalla/mealplanner/pkg/types"
)

var (
	flagRecipeCategory     string
	flagRecipeDifficulty   string
	flagRecipeServings     int
	flagRecipePrepMinutes  int
	flagRecipeCookMinutes  int
	flagRecipeInstructions string
	flagRecipeIngredients  []string
	flagFavoritesOnly      bool
	flagMaxTime            int
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		var recipes []types.Recipe
		switch {
		case flagFavoritesOnly:
			recipes, err = repos.Recipes.Favorites()
		case flagRecipeCategory != "" && flagMaxTime > 0:
			recipes, err = repos.Recipes.QuickInCategory(flagRecipeCategory, flagMaxTime)
		case flagRecipeCategory != "":
			recipes, err = repos.Recipes.ByCategory(flagRecipeCategory)
		default:
			recipes, err = repos.Recipes.List()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(recipes)
		}
		for _, r := range recipes {
			fav := " "
			if r.IsFavorite {
				fav = "*"
			}
			fmt.Printf("%s %4d  %-30s %-12s %3d min  %.1f\n",
				fav, r.ID, r.Title, r.Category, r.TotalTimeMinutes(), r.Rating)
		}
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe with its ingredients",
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

		recipe, err := repos.Recipes.Get(id)
		if err != nil {
			return err
		}
		details, err := repos.Recipes.IngredientDetails(id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{"recipe": recipe, "ingredients": details})
		}
		fmt.Printf("%s (%s, %s)\n", recipe.Title, recipe.Category, recipe.DifficultyLevel)
		fmt.Printf("serves %d, %d min prep + %d min cook\n",
			recipe.Servings, recipe.PrepTimeMinutes, recipe.CookTimeMinutes)
		if recipe.Description != nil {
			fmt.Println(*recipe.Description)
		}
		if len(details) > 0 {
			fmt.Println("ingredients:")
			for _, d := range details {
				fmt.Println("  -", d.DisplayText())
			}
		}
		fmt.Println("instructions:")
		fmt.Println(recipe.Instructions)
		return nil
	},
}

var recipeAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a recipe",
	Long: `Add a recipe. Ingredients are given as repeated --ingredient flags in
the form "ingredientID:amount:unit", e.g. --ingredient 3:200:g.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ingredients, err := parseIngredientFlags(flagRecipeIngredients)
		if err != nil {
			return err
		}

		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		id, err := repos.Recipes.Create(types.Recipe{
			Title:           args[0],
			Instructions:    flagRecipeInstructions,
			PrepTimeMinutes: flagRecipePrepMinutes,
			CookTimeMinutes: flagRecipeCookMinutes,
			Servings:        flagRecipeServings,
			Category:        flagRecipeCategory,
			DifficultyLevel: flagRecipeDifficulty,
		}, ingredients)
		if err != nil {
			return err
		}
		fmt.Printf("added recipe %d\n", id)
		return nil
	},
}

var recipeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search your recipes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		recipes, err := repos.Recipes.Search(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(recipes)
		}
		for _, r := range recipes {
			fmt.Printf("%4d  %s\n", r.ID, r.Title)
		}
		return nil
	},
}

var recipeFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a recipe's favorite flag",
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

		on, err := repos.Recipes.ToggleFavorite(id)
		if err != nil {
			return err
		}
		if on {
			fmt.Println("marked as favorite")
		} else {
			fmt.Println("removed from favorites")
		}
		return nil
	},
}

var recipeRateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Rate a recipe 0-5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad recipe id %q", args[0])
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("bad rating %q", args[1])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.Recipes.SetRating(id, rating)
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
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

		return repos.Recipes.Delete(id)
	},
}

// parseIngredientFlags parses repeated "ingredientID:amount:unit" values.
func parseIngredientFlags(values []string) ([]types.RecipeIngredient, error) {
	var out []types.RecipeIngredient
	for _, v := range values {
		parts := strings.SplitN(v, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad ingredient %q, want ingredientID:amount:unit", v)
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad ingredient id in %q", v)
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad amount in %q", v)
		}
		out = append(out, types.RecipeIngredient{
			IngredientID: id,
			Amount:       amount,
			Unit:         parts[2],
		})
	}
	return out, nil
}

func init() {
	recipeListCmd.Flags().BoolVar(&flagFavoritesOnly, "favorites", false, "only favorites")
	recipeListCmd.Flags().StringVar(&flagRecipeCategory, "category", "", "filter by category")
	recipeListCmd.Flags().IntVar(&flagMaxTime, "max-time", 0, "max total minutes (with --category)")

	recipeAddCmd.Flags().StringVar(&flagRecipeCategory, "category", "Dinner", "recipe category")
	recipeAddCmd.Flags().StringVar(&flagRecipeDifficulty, "difficulty", types.DifficultyEasy, "Easy, Medium, or Hard")
	recipeAddCmd.Flags().IntVar(&flagRecipeServings, "servings", 2, "base serving count")
	recipeAddCmd.Flags().IntVar(&flagRecipePrepMinutes, "prep", 0, "prep time in minutes")
	recipeAddCmd.Flags().IntVar(&flagRecipeCookMinutes, "cook", 0, "cook time in minutes")
	recipeAddCmd.Flags().StringVar(&flagRecipeInstructions, "instructions", "", "preparation instructions")
	recipeAddCmd.Flags().StringArrayVar(&flagRecipeIngredients, "ingredient", nil, "ingredientID:amount:unit (repeatable)")
	_ = recipeAddCmd.MarkFlagRequired("instructions")

	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeSearchCmd)
	recipeCmd.AddCommand(recipeFavoriteCmd)
	recipeCmd.AddCommand(recipeRateCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
}
