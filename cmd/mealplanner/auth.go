// Account and session commands: register, login, logout, whoami.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagEmail    string
	flagFullName string
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		u, err := repos.Users.Register(args[0], args[1], flagEmail, flagFullName)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (id %d)\n", u.Username, u.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and begin a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		res, err := repos.Users.Login(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", res.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		if err := repos.Users.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and their stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closer, err := openRepos()
		if err != nil {
			return err
		}
		defer closer()

		u, err := repos.Users.RestoreSession()
		if err != nil {
			return err
		}
		stats, err := repos.Users.Stats()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{
				"id": u.ID, "username": u.Username, "full_name": u.FullName,
				"email": u.Email, "stats": stats,
			})
		}
		fmt.Printf("%s (%s)\n", u.Username, u.Email)
		fmt.Printf("recipes: %d  meal plans: %d  grocery items: %d\n",
			stats.RecipeCount, stats.MealPlanCount, stats.GroceryItemCount)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&flagEmail, "email", "", "account email address")
	registerCmd.Flags().StringVar(&flagFullName, "full-name", "", "display name")
	_ = registerCmd.MarkFlagRequired("email")
}
