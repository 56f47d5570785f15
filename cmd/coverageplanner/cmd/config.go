package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gizlim/CoveragePlanner/config"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a parameter file",
	Long: `Create a parameter file prefilled with default values.

If FILE is not provided, 'params.config' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "params.config"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		if err := config.Save(path, config.Default()); err != nil {
			check(err)
		}
		fmt.Printf("parameter file written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
