// Package planner is the pipeline entry point: it threads one immutable
// config.Params value and the external collaborator interfaces through
// every component, in dependency order, and returns the final waypoint
// list.
//
// Run is the single place that knows the whole pipeline shape; every
// component it calls is otherwise unaware of its neighbors.
package planner

import (
	"fmt"
	"image"
	"math"
	"math/big"

	"gocv.io/x/gocv"

	"github.com/Gizlim/CoveragePlanner/bcd"
	"github.com/Gizlim/CoveragePlanner/buildctx"
	"github.com/Gizlim/CoveragePlanner/cellgraph"
	"github.com/Gizlim/CoveragePlanner/config"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/imaging"
	"github.com/Gizlim/CoveragePlanner/ioplan"
	"github.com/Gizlim/CoveragePlanner/planerr"
	"github.com/Gizlim/CoveragePlanner/stitch"
	"github.com/Gizlim/CoveragePlanner/sweep"
	"github.com/Gizlim/CoveragePlanner/sweepdir"
	"github.com/Gizlim/CoveragePlanner/traversal"
)

// Diagnostic image files the visualizer is handed during a run. The no-op
// visualizer discards them; only an interactive/debugging run (SHOW_CELLS)
// writes them out.
const (
	preprocessImageName = "preprocess_img.png"
	resultImageName     = "image_result.png"
)

// Collaborators bundles the external interfaces the pipeline consumes:
// image I/O, interactive selection, manual per-cell orientation and
// diagnostic drawing. A headless run uses ioplan's Noop* implementations.
type Collaborators struct {
	Reader   ioplan.ImageReader
	Selector ioplan.InteractiveSelector
	Angler   ioplan.AngleProvider
	Viz      ioplan.Visualizer
}

// Plan is the full result of one pipeline run: the waypoint list plus the
// intermediate structures a caller may want for output files or
// diagnostics (the external polygon file, config.DebugDump).
type Plan struct {
	PWH        geom.PolygonWithHoles
	Cells      []geom.Polygon
	Graph      *cellgraph.Graph
	Order      []traversal.Step
	Sweeps     [][]geom.Point
	Waypoints  []geom.Point
	MainDegree int
	ROI        *[4]geom.Point

	ImageHeight, ImageWidth int
}

// AdjacencyEdgeCount returns the number of undirected adjacency edges in
// plan's cell graph, for diagnostic dumps.
func (plan Plan) AdjacencyEdgeCount() int {
	if plan.Graph == nil {
		return 0
	}
	n := 0
	for _, nbrs := range plan.Graph.Adjacency {
		n += len(nbrs)
	}
	return n / 2
}

// Run executes the full coverage pipeline: extract a polygon from the map
// image, decompose it into cells, order a traversal, sweep each cell, and
// stitch the sweeps into one waypoint list.
func Run(ctx *buildctx.Context, p config.Params, c Collaborators) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}

	img, err := c.Reader.ReadImage(p.ImagePath)
	if err != nil {
		return Plan{}, planerr.New(planerr.InvalidMap, "planner", err.Error())
	}

	var roi *[4]image.Point
	var roiPts *[4]geom.Point
	if p.CropRegion {
		pts, err := c.Selector.SelectROI(img)
		if err != nil {
			return Plan{}, planerr.New(planerr.InvalidParameter, "planner", "ROI selection failed: "+err.Error())
		}
		var r [4]image.Point
		for i, pt := range pts {
			x, y := pt.Float64()
			r[i] = image.Pt(int(x), int(y))
		}
		roi = &r
		roiPts = &pts
	}

	extracted, err := imaging.Extract(ctx, img, roi, p)
	if err != nil {
		return Plan{}, err
	}
	defer extracted.Preprocessed.Close()
	bbMin, bbMax := extracted.PWH.Outer.BoundingBox()
	ctx.Progressf("free region bounds %v - %v, %d holes", bbMin, bbMax, len(extracted.PWH.Holes))
	c.Viz.SaveImage(preprocessImageName, extracted.Preprocessed)
	c.Viz.ShowPolygons(img, extracted.PWH)

	start, err := resolveStart(p, c, img)
	if err != nil {
		return Plan{}, err
	}
	if !inFreeRegion(extracted.PWH, start) {
		return Plan{}, planerr.New(planerr.StartOutOfRegion, "planner",
			fmt.Sprintf("start point %v lies outside the free region", start))
	}

	ctx.StartTimer(buildctx.StageSweepDir)
	mainDeg := sweepdir.MainDirection(extracted.PWH.Outer)
	ctx.StopTimer(buildctx.StageSweepDir)

	ctx.StartTimer(buildctx.StageDecompose)
	cells, _, err := bcd.Decompose(extracted.PWH)
	ctx.StopTimer(buildctx.StageDecompose)
	if err != nil {
		return Plan{}, err
	}

	ctx.StartTimer(buildctx.StageGraph)
	graph, isect, err := cellgraph.Build(cells)
	ctx.StopTimer(buildctx.StageGraph)
	if err != nil {
		return Plan{}, err
	}
	c.Viz.ShowCells(img, cells)

	ctx.StartTimer(buildctx.StageTraversal)
	order, err := traversal.Traverse(graph, start)
	ctx.StopTimer(buildctx.StageTraversal)
	if err != nil {
		return Plan{}, err
	}

	ctx.StartTimer(buildctx.StageSweepGen)
	sweeps, err := generateSweeps(ctx, p, c, cells)
	ctx.StopTimer(buildctx.StageSweepGen)
	if err != nil {
		return Plan{}, err
	}

	ctx.StartTimer(buildctx.StageStitch)
	waypoints, err := stitch.Stitch(graph, isect, order, sweeps, start)
	ctx.StopTimer(buildctx.StageStitch)
	if err != nil {
		return Plan{}, err
	}
	waypoints = stitch.Subdivide(waypoints, p.SubdivisionDist)
	c.Viz.ShowCover(img, waypoints)
	c.Viz.SaveImage(resultImageName, img)

	return Plan{
		PWH:         extracted.PWH,
		Cells:       cells,
		Graph:       graph,
		Order:       order,
		Sweeps:      sweeps,
		Waypoints:   waypoints,
		MainDegree:  mainDeg,
		ROI:         roiPts,
		ImageHeight: extracted.Height,
		ImageWidth:  extracted.Width,
	}, nil
}

// inFreeRegion reports whether pt may legally be the robot's start: inside
// the outer boundary (or exactly on it) and not strictly inside any hole.
// A start outside the free region is a fatal StartOutOfRegion; the
// nearest-cell fallback in traversal only covers starts that are in the
// free region but fall between cells, e.g. exactly on a shared boundary.
func inFreeRegion(pwh geom.PolygonWithHoles, pt geom.Point) bool {
	if !pwh.Outer.ContainsOrOnBoundary(pt) {
		return false
	}
	for _, h := range pwh.Holes {
		if h.Contains(pt) {
			return false
		}
	}
	return true
}

// resolveStart returns the user's start point: interactively selected when
// MOUSE_SELECT_START is set, else the configured START_POS fallback.
func resolveStart(p config.Params, c Collaborators, img gocv.Mat) (geom.Point, error) {
	if p.MouseSelectStart {
		pt, err := c.Selector.SelectStart(img)
		if err != nil {
			return geom.Point{}, planerr.New(planerr.InvalidParameter, "planner", "start selection failed: "+err.Error())
		}
		return pt, nil
	}
	return geom.NewPoint(int64(p.StartX), int64(p.StartY)), nil
}

// generateSweeps computes a boustrophedon sweep for each cell, in the
// cell's chosen direction (manual per-cell orientation when
// MANUAL_ORIENTATION is set and the provider has an answer, else the
// computed optimal direction). A SweepEmpty failure for one cell is
// recoverable: it is logged and that cell is skipped by
// standing in a single-point sweep at its first vertex, so the stitcher
// still routes a path through it without covering it with parallel lines.
func generateSweeps(ctx *buildctx.Context, p config.Params, c Collaborators, cells []geom.Polygon) ([][]geom.Point, error) {
	out := make([][]geom.Point, len(cells))
	for i, cell := range cells {
		best, err := sweepdir.Best(cell)
		if err != nil {
			return nil, planerr.New(planerr.DegeneratePolygon, "planner", err.Error())
		}
		dir := best

		if p.ManualOrientation {
			bestDeg := degreesOf(best)
			if deg, ok := c.Angler.Angle(i, cell, bestDeg); ok {
				if math.IsNaN(deg) {
					ctx.Warningf("cell %d: manual sweep angle is NaN, falling back to computed direction", i)
				} else if d, ok := directionFromDegrees(deg); ok {
					dir = d
				} else {
					ctx.Warningf("cell %d: manual sweep angle %v unrepresentable, falling back", i, deg)
				}
			}
		}

		pts, err := sweep.Generate(cell, dir, p.SweepStep)
		if err != nil {
			if status, ok := err.(*planerr.Status); ok && status.Kind.Recoverable() {
				ctx.Warningf("cell %d: %v", i, status)
				pts = []geom.Point{cell.At(0)}
			} else {
				return nil, err
			}
		}
		out[i] = pts
	}
	return out, nil
}

// degreesOf converts a Direction to degrees using the same image-to-math
// convention sweepdir.MainDirection uses (y grows down, theta measured
// from +x towards +y-up), purely for display in the manual-orientation
// prompt.
func degreesOf(d geom.Direction) float64 {
	dx, dy := d.Float64()
	return math.Atan2(-dy, dx) / math.Pi * 180.0
}

// directionFromDegrees is degreesOf's inverse, used to turn a manually
// supplied angle back into a Direction. The result is necessarily an
// approximation (an arbitrary angle has no exact rational cosine/sine in
// general), which is acceptable here: a manual orientation is an
// externally injected value, not a computed one.
func directionFromDegrees(deg float64) (geom.Direction, bool) {
	rad := deg * math.Pi / 180.0
	dx := new(big.Rat).SetFloat64(math.Cos(rad))
	dy := new(big.Rat).SetFloat64(-math.Sin(rad))
	if dx == nil || dy == nil {
		return geom.Direction{}, false
	}
	if dx.Sign() == 0 && dy.Sign() == 0 {
		return geom.Direction{}, false
	}
	return geom.Direction{Dx: dx, Dy: dy}, true
}

// Summarize renders a one-line human-readable description of plan, used by
// the CLI's default text report.
func Summarize(plan Plan) string {
	return fmt.Sprintf("%d cells, %d waypoints, main direction %d deg",
		len(plan.Cells), len(plan.Waypoints), plan.MainDegree)
}
