package ioplan

import (
	"errors"

	"gocv.io/x/gocv"

	"github.com/Gizlim/CoveragePlanner/geom"
)

// GocvImageReader is the default ImageReader, backed by gocv.IMRead.
type GocvImageReader struct{}

func (GocvImageReader) ReadImage(path string) (gocv.Mat, error) {
	m := gocv.IMRead(path, gocv.IMReadColor)
	if m.Empty() {
		return m, errors.New("ioplan: could not read image " + path)
	}
	return m, nil
}

// NoopSelector is an InteractiveSelector that never blocks on user input; it
// is used whenever MOUSE_SELECT_START and CROP_REGION are both false, and as
// the default in headless/CI runs.
type NoopSelector struct{}

func (NoopSelector) SelectStart(gocv.Mat) (geom.Point, error) {
	return geom.Point{}, errors.New("ioplan: interactive start selection not available")
}

func (NoopSelector) SelectROI(gocv.Mat) ([4]geom.Point, error) {
	return [4]geom.Point{}, errors.New("ioplan: interactive ROI selection not available")
}

// NoopVisualizer is a Visualizer that draws nothing, for headless/CI runs
// (SHOW_CELLS=0).
type NoopVisualizer struct{}

func (NoopVisualizer) ShowPolygons(gocv.Mat, geom.PolygonWithHoles) {}
func (NoopVisualizer) ShowCells(gocv.Mat, []geom.Polygon)           {}
func (NoopVisualizer) ShowCover(gocv.Mat, []geom.Point)             {}
func (NoopVisualizer) SaveImage(string, gocv.Mat)                   {}

// NoopAngleProvider never has an answer, causing every cell to fall back to
// its computed best sweep direction — the behavior of a non-interactive run
// (MANUAL_ORIENTATION=0).
type NoopAngleProvider struct{}

func (NoopAngleProvider) Angle(int, geom.Polygon, float64) (float64, bool) {
	return 0, false
}
