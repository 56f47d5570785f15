package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Gizlim/CoveragePlanner/ioplan"
)

// infosCmd represents the infos command: read a waypoint file produced by
// 'plan' and print summary statistics about it, without re-running the
// pipeline.
var infosCmd = &cobra.Command{
	Use:   "infos PATH",
	Short: "show statistics about a waypoint file",
	Long: `Read a waypoint file written by 'plan' and print point count,
total path length and bounding box, without re-running the pipeline.

If PATH is not provided, 'waypoints.txt' is used.`,
	Run: doInfos,
}

func init() {
	RootCmd.AddCommand(infosCmd)
}

func doInfos(cmd *cobra.Command, args []string) {
	path := "waypoints.txt"
	if len(args) >= 1 {
		path = args[0]
	}

	pts, err := ioplan.ReadWaypoints(path)
	check(err)

	if len(pts) == 0 {
		fmt.Println("0 waypoints")
		return
	}

	minX, minY := pts[0].Float64()
	maxX, maxY := minX, minY
	length := 0.0
	for i, p := range pts {
		x, y := p.Float64()
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
		if i > 0 {
			px, py := pts[i-1].Float64()
			length += math.Hypot(x-px, y-py)
		}
	}

	fmt.Printf("waypoints   %d\n", len(pts))
	fmt.Printf("path length %.1f\n", length)
	fmt.Printf("bounding box (%.0f,%.0f) - (%.0f,%.0f)\n", minX, minY, maxX, maxY)
}
