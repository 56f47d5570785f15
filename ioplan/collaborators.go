// Package ioplan defines the collaborator interfaces the core pipeline
// consumes (image reader, interactive selector, visualizer) and the three
// deterministic output-file writers. The core never depends on a
// concrete GUI toolkit: headless, no-op implementations are provided here
// for batch/CI use, and the interfaces are the only seam a real interactive
// front-end would need to implement.
package ioplan

import (
	"gocv.io/x/gocv"

	"github.com/Gizlim/CoveragePlanner/geom"
)

// ImageReader loads a map image from disk into memory. Abstracted from the
// extractor so that tests can substitute synthetic images.
type ImageReader interface {
	ReadImage(path string) (gocv.Mat, error)
}

// InteractiveSelector returns a point or four points selected by mouse
// click. A non-interactive run never calls it (MOUSE_SELECT_START /
// CROP_REGION both default to false).
type InteractiveSelector interface {
	SelectStart(img gocv.Mat) (geom.Point, error)
	SelectROI(img gocv.Mat) ([4]geom.Point, error)
}

// AngleProvider answers the per-cell manual sweep orientation prompt
// (MANUAL_ORIENTATION). ok is false when the provider has no answer (e.g.
// batch mode) or the parsed angle was not a number, in which case the
// caller falls back to the best computed sweep direction.
type AngleProvider interface {
	Angle(cellIndex int, cell geom.Polygon, bestDeg float64) (deg float64, ok bool)
}

// Visualizer draws diagnostic output. Every method is purely informational;
// none of them feed back into the geometric pipeline.
type Visualizer interface {
	ShowPolygons(img gocv.Mat, pwh geom.PolygonWithHoles)
	ShowCells(img gocv.Mat, cells []geom.Polygon)
	ShowCover(img gocv.Mat, waypoints []geom.Point)
	SaveImage(path string, img gocv.Mat)
}
