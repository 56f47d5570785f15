// Package cmd is the coverageplanner command-line front-end: a cobra root
// command with config/plan/infos subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "coverageplanner",
	Short: "plan a boustrophedon coverage path over a 2D occupancy map",
	Long: `coverageplanner turns a 2D occupancy map image into an ordered list
of waypoints that sweeps every point of the free region with a robot
footprint:
	- binarize and morphologically shape the map into a polygon with holes,
	- decompose it into x-monotone cells (boustrophedon cell decomposition),
	- sweep each cell and stitch the sweeps into one waypoint file.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
