// Version command for the mealplanner CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const appVersion = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mealplanner version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mealplanner", appVersion)
	},
}
