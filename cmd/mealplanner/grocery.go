// Grocery list commands: list, add, add-recipe, generate, check, buy, clear.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagGroceryAmount    float64
	flagGroceryUnit      string
	flagGroceryCategory  string
	flagGroceryServings  int
	flagUncheckedOnly    bool
	flagReplaceGenerated bool
	flagClearGenerated   bool
)

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Manage the shopping list",
}

var groceryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shopping list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		items, err := repos.Grocery.List()
		if flagUncheckedOnly {
			items, err = repos.Grocery.Unchecked()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(items)
		}
		lastCategory := ""
		for _, item := range items {
			if item.Category != lastCategory {
				fmt.Println(item.Category)
				lastCategory = item.Category
			}
			fmt.Printf("  %s %4d  %-24s %g %s\n",
				checkbox(item.IsChecked), item.ID, item.Name, item.Amount, item.Unit)
		}
		return nil
	},
}

var groceryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a manual item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		id, err := repos.Grocery.AddManual(args[0], flagGroceryAmount, flagGroceryUnit, flagGroceryCategory)
		if err != nil {
			return err
		}
		fmt.Printf("added item %d\n", id)
		return nil
	},
}

var groceryAddRecipeCmd = &cobra.Command{
	Use:   "add-recipe <recipe-id>",
	Short: "Add one recipe's ingredients, scaled to a serving count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipeID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad recipe id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		n, err := repos.Grocery.AddRecipe(recipeID, flagGroceryServings)
		if err != nil {
			return err
		}
		fmt.Printf("added %d items\n", n)
		return nil
	},
}

var groceryGenerateCmd = &cobra.Command{
	Use:   "generate <start-date> <end-date>",
	Short: "Derive items from meals planned in a date range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		n, err := repos.Grocery.GenerateForRange(args[0], args[1], flagReplaceGenerated)
		if err != nil {
			return err
		}
		fmt.Printf("generated %d items\n", n)
		return nil
	},
}

var groceryCheckCmd = &cobra.Command{
	Use:   "check <item-id>",
	Short: "Check an item off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.Grocery.SetChecked(id, true)
	},
}

var groceryUncheckCmd = &cobra.Command{
	Use:   "uncheck <item-id>",
	Short: "Clear an item's check mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[0])
		}
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.Grocery.SetChecked(id, false)
	},
}

var groceryBuyCmd = &cobra.Command{
	Use:   "buy <name>...",
	Short: "Check off items by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		return repos.Grocery.MarkPurchased(args)
	},
}

var groceryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove checked items, or recipe-derived ones with --generated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		if flagClearGenerated {
			return repos.Grocery.ClearGenerated()
		}
		return repos.Grocery.ClearChecked()
	},
}

func init() {
	groceryListCmd.Flags().BoolVar(&flagUncheckedOnly, "unchecked", false, "only items still to buy")

	groceryAddCmd.Flags().Float64Var(&flagGroceryAmount, "amount", 1, "quantity")
	groceryAddCmd.Flags().StringVar(&flagGroceryUnit, "unit", "unit", "unit of measure")
	groceryAddCmd.Flags().StringVar(&flagGroceryCategory, "category", "Other", "list category")

	groceryAddRecipeCmd.Flags().IntVar(&flagGroceryServings, "servings", 0, "scale to this serving count (0 keeps the recipe's)")

	groceryGenerateCmd.Flags().BoolVar(&flagReplaceGenerated, "replace", false, "clear previously derived items first")

	groceryClearCmd.Flags().BoolVar(&flagClearGenerated, "generated", false, "remove recipe-derived items instead")

	groceryCmd.AddCommand(groceryListCmd)
	groceryCmd.AddCommand(groceryAddCmd)
	groceryCmd.AddCommand(groceryAddRecipeCmd)
	groceryCmd.AddCommand(groceryGenerateCmd)
	groceryCmd.AddCommand(groceryCheckCmd)
	groceryCmd.AddCommand(groceryUncheckCmd)
	groceryCmd.AddCommand(groceryBuyCmd)
	groceryCmd.AddCommand(groceryClearCmd)
}
