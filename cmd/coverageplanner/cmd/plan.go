package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gizlim/CoveragePlanner/buildctx"
	"github.com/Gizlim/CoveragePlanner/config"
	"github.com/Gizlim/CoveragePlanner/ioplan"
	"github.com/Gizlim/CoveragePlanner/planner"
)

var (
	waypointsOut string
	polygonOut   string
	roiOut       string
	debugDumpOut string
	verbose      bool
)

// planCmd represents the plan command: load a parameter file, run the
// coverage pipeline end to end, and write the output files.
var planCmd = &cobra.Command{
	Use:   "plan PARAMFILE",
	Short: "compute a coverage path from a parameter file",
	Long: `Load a parameter file and run the full coverage pipeline:
extract a polygon from the map image, decompose it into cells, order a
traversal, sweep each cell and stitch the sweeps into one waypoint file.

If PARAMFILE is not provided, 'params.config' is used.`,
	Run: doPlan,
}

func init() {
	RootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&waypointsOut, "waypoints", "waypoints.txt", "output waypoint file")
	planCmd.Flags().StringVar(&polygonOut, "polygon", "", "output external polygon file (optional)")
	planCmd.Flags().StringVar(&roiOut, "roi", "roi.txt", "output ROI file, written when CROP_REGION is set")
	planCmd.Flags().StringVar(&debugDumpOut, "dump-debug", "", "write a YAML diagnostic snapshot to this path (optional)")
	planCmd.Flags().BoolVar(&verbose, "verbose", false, "print logged progress/warning messages and stage timings after the run")
}

func doPlan(cmd *cobra.Command, args []string) {
	path := "params.config"
	if len(args) >= 1 {
		path = args[0]
	}

	p, err := config.Load(path)
	check(err)

	ctx := buildctx.New(true)

	viz := ioplan.Visualizer(ioplan.NoopVisualizer{})
	if p.ShowCells {
		viz = ioplan.GocvVisualizer{}
	}

	collab := planner.Collaborators{
		Reader:   ioplan.GocvImageReader{},
		Selector: ioplan.NoopSelector{},
		Angler:   ioplan.NoopAngleProvider{},
		Viz:      viz,
	}

	plan, err := planner.Run(ctx, p, collab)
	if verbose {
		ctx.Dump(func(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) })
	}
	check(err)

	check(ioplan.WriteWaypoints(waypointsOut, plan.Waypoints, plan.ImageHeight))
	fmt.Printf("%s\n", planner.Summarize(plan))

	if polygonOut != "" {
		check(ioplan.WriteExternalPolygon(polygonOut, plan.PWH.Outer))
	}

	if plan.ROI != nil {
		check(ioplan.WriteROI(roiOut, *plan.ROI))
	}

	if debugDumpOut != "" {
		dump := config.DebugDump{
			CellCount:      len(plan.Cells),
			AdjacencyEdges: plan.AdjacencyEdgeCount(),
			WaypointCount:  len(plan.Waypoints),
			Warnings:       ctx.Messages(),
		}
		for _, s := range plan.Order {
			dump.TraversalOrder = append(dump.TraversalOrder, s.CellIndex)
		}
		for _, sw := range plan.Sweeps {
			dump.SweepPointCount = append(dump.SweepPointCount, len(sw))
		}
		check(config.WriteDebugDump(debugDumpOut, dump))
	}
}
