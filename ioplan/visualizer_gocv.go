package ioplan

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/Gizlim/CoveragePlanner/geom"
)

// GocvVisualizer is the default Visualizer (SHOW_CELLS=1): it draws
// diagnostic overlays with gocv's drawing primitives directly onto the
// image it is handed, so the final SaveImage snapshot carries every
// overlay drawn before it.
type GocvVisualizer struct{}

func (GocvVisualizer) ShowPolygons(img gocv.Mat, pwh geom.PolygonWithHoles) {
	drawRing(img, pwh.Outer, color.RGBA{0, 255, 0, 0})
	for _, h := range pwh.Holes {
		drawRing(img, h, color.RGBA{0, 0, 255, 0})
	}
}

func (GocvVisualizer) ShowCells(img gocv.Mat, cells []geom.Polygon) {
	palette := []color.RGBA{
		{255, 0, 0, 0}, {0, 200, 200, 0}, {200, 0, 200, 0}, {200, 200, 0, 0},
	}
	for i, c := range cells {
		drawRing(img, c, palette[i%len(palette)])
	}
}

func (GocvVisualizer) ShowCover(img gocv.Mat, waypoints []geom.Point) {
	pts := toImagePoints(waypoints)
	for i := 0; i+1 < len(pts); i++ {
		gocv.Line(&img, pts[i], pts[i+1], color.RGBA{255, 255, 0, 0}, 1)
	}
}

func (GocvVisualizer) SaveImage(path string, img gocv.Mat) {
	gocv.IMWrite(path, img)
}

func drawRing(img gocv.Mat, poly geom.Polygon, col color.RGBA) {
	pts := toImagePoints(poly.Points)
	pts = append(pts, pts[0])
	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()
	pvs := gocv.NewPointsVector()
	defer pvs.Close()
	pvs.Append(pv)
	gocv.Polylines(&img, pvs, true, col, 2)
}

func toImagePoints(pts []geom.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		x, y := p.Float64()
		out[i] = image.Pt(int(x), int(y))
	}
	return out
}
