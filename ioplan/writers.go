package ioplan

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Gizlim/CoveragePlanner/geom"
)

// ReadWaypoints reads back a file written by WriteWaypoints: one "x y"
// integer pair per line, in the file's own coordinate frame.
func ReadWaypoints(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pts []geom.Point
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		var x, y int64
		if _, err := fmt.Sscanf(line, "%d %d", &x, &y); err != nil {
			return nil, fmt.Errorf("ioplan: malformed waypoint line %q: %w", line, err)
		}
		pts = append(pts, geom.NewPoint(x, y))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

// WriteWaypoints writes one "x y" integer pair per line. Image y grows
// downward but the persisted file uses a y-up convention, so every y is
// flipped about the image's horizontal midline (y_out = 2*cy - y,
// cy = imageHeight/2).
func WriteWaypoints(path string, waypoints []geom.Point, imageHeight int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	cy := imageHeight / 2
	for _, p := range waypoints {
		x, y := p.Float64()
		xi, yi := int(roundHalfAwayFromZero(x)), int(roundHalfAwayFromZero(y))
		fmt.Fprintf(w, "%d %d\n", xi, 2*cy-yi)
	}
	return w.Flush()
}

// WriteExternalPolygon writes the outer free-region polygon: first line is
// the vertex count, followed by one "x y" pair per line.
func WriteExternalPolygon(path string, outer geom.Polygon) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", outer.Len())
	for _, p := range outer.Points {
		x, y := p.Float64()
		fmt.Fprintf(w, "%d %d\n", int(roundHalfAwayFromZero(x)), int(roundHalfAwayFromZero(y)))
	}
	return w.Flush()
}

// ReadExternalPolygon reads back a file written by WriteExternalPolygon:
// a vertex count line followed by one "x y" pair per line.
func ReadExternalPolygon(path string) (geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return geom.Polygon{}, err
	}
	defer f.Close()

	var n int
	if _, err := fmt.Fscanf(f, "%d\n", &n); err != nil {
		return geom.Polygon{}, fmt.Errorf("ioplan: malformed polygon count: %w", err)
	}
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		var x, y int64
		if _, err := fmt.Fscanf(f, "%d %d\n", &x, &y); err != nil {
			return geom.Polygon{}, fmt.Errorf("ioplan: malformed polygon vertex %d: %w", i, err)
		}
		pts = append(pts, geom.NewPoint(x, y))
	}
	return geom.NewPolygon(pts), nil
}

// WriteROI writes the four ROI corner points selected interactively, one
// "x y" pair per line, in image coordinates. All four points are always
// written, even when the crop only used their bounding rectangle.
func WriteROI(path string, pts [4]geom.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, p := range pts {
		x, y := p.Float64()
		fmt.Fprintf(w, "%d %d\n", int(roundHalfAwayFromZero(x)), int(roundHalfAwayFromZero(y)))
	}
	return w.Flush()
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}
