// Package imaging implements the map-to-polygon extractor: binarize,
// erode by the robot footprint, open to remove
// speckle, inflate obstacles, trace the contour hierarchy, pick the
// largest-area outer contour and its direct children as holes, simplify
// each with Douglas-Peucker, and translate back into the original image
// frame if an ROI crop was applied.
//
// Every OpenCV-shaped step here (threshold, morphologyEx, findContours,
// approxPolyDP) is invoked through gocv.io/x/gocv rather than
// reimplementing binarization/morphology/contour-tracing by hand.
package imaging

import (
	"image"
	"sort"

	"github.com/aurelien-rainone/assertgo"
	"gocv.io/x/gocv"

	"github.com/Gizlim/CoveragePlanner/buildctx"
	"github.com/Gizlim/CoveragePlanner/config"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
)

const (
	binarizeThreshold = 250
	simplifyEpsilon   = 3 // pixels, Douglas-Peucker tolerance
)

// Result is the outcome of Extract: the free-region polygon in original
// image coordinates, plus the image dimensions (needed later for the y-up
// conversion when waypoints are written out).
type Result struct {
	PWH    geom.PolygonWithHoles
	Height int
	Width  int

	// Preprocessed is the binarized, morphologically shaped working image
	// the contours were traced from, retained for diagnostic output. The
	// caller owns it and must Close it.
	Preprocessed gocv.Mat
}

// Extract runs the full map-to-polygon pipeline on img, with an optional
// ROI crop (roi==nil disables cropping regardless of CropRegion, letting
// callers bypass interactive selection in tests).
func Extract(ctx *buildctx.Context, img gocv.Mat, roi *[4]image.Point, p config.Params) (Result, error) {
	ctx.StartTimer(buildctx.StageExtract)
	defer ctx.StopTimer(buildctx.StageExtract)

	origH, origW := img.Rows(), img.Cols()
	work := img
	var offsetX, offsetY int

	if roi != nil {
		rect, tl := boundingRect(*roi)
		work = img.Region(rect)
		offsetX, offsetY = tl.X, tl.Y
		ctx.Progressf("cropped to ROI at (%d,%d) size %dx%d", tl.X, tl.Y, rect.Dx(), rect.Dy())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(work, &gray, gocv.ColorBGRToGray)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(gray, &bin, binarizeThreshold, 255, gocv.ThresholdBinary)

	erodeKernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(int(p.RobotWidth), int(p.RobotHeight)))
	defer erodeKernel.Close()
	gocv.MorphologyEx(bin, &bin, gocv.MorphErode, erodeKernel)
	ctx.Progressf("erosion kernel applied (robot size %dx%d)", p.RobotWidth, p.RobotHeight)

	openKernel := gocv.GetStructuringElement(gocv.MorphRect,
		image.Pt(int(p.OpenKernelWidth), int(p.OpenKernelHeight)))
	defer openKernel.Close()
	gocv.MorphologyEx(bin, &bin, gocv.MorphOpen, openKernel)
	ctx.Progressf("open kernel applied")

	gocv.BitwiseNot(bin, &bin)
	dilateKernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(int(p.DilateKernelWidth), int(p.DilateKernelHeight)))
	defer dilateKernel.Close()
	gocv.Dilate(bin, &bin, dilateKernel)
	gocv.BitwiseNot(bin, &bin)
	ctx.Progressf("obstacle inflation applied")

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(bin, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return Result{}, planerr.New(planerr.InvalidMap, "imaging", "empty map")
	}

	assert.True(hierarchy.Cols() >= contours.Size(),
		"contour hierarchy shorter than contour list (%d < %d)", hierarchy.Cols(), contours.Size())

	outerIdx := largestAreaContour(contours)
	outerPoly := simplify(contours.At(outerIdx))

	var holePolys []geom.Polygon
	for i := 0; i < contours.Size(); i++ {
		if i == outerIdx {
			continue
		}
		parent := hierarchyParent(hierarchy, i)
		assert.True(parent < contours.Size(), "contour %d has parent %d out of range", i, parent)
		if parent == outerIdx {
			hole := simplify(contours.At(i))
			if hole.Len() < 3 {
				continue // speckle collapsed by simplification, not a hole
			}
			holePolys = append(holePolys, hole)
		}
	}

	if outerPoly.Len() < 3 {
		return Result{}, planerr.New(planerr.InvalidMap, "imaging", "map has no traversable area")
	}

	if roi != nil {
		outerPoly = outerPoly.Translate(int64(offsetX), int64(offsetY))
		for i := range holePolys {
			holePolys[i] = holePolys[i].Translate(int64(offsetX), int64(offsetY))
		}
	}

	pwh := geom.NewPolygonWithHoles(outerPoly, holePolys)
	return Result{PWH: pwh, Height: origH, Width: origW, Preprocessed: bin.Clone()}, nil
}

// simplify converts a gocv contour to a geom.Polygon via Douglas-Peucker
// simplification, preserving closure.
func simplify(contour gocv.PointVector) geom.Polygon {
	simplified := gocv.ApproxPolyDP(contour, simplifyEpsilon, true)
	defer simplified.Close()
	pts := simplified.ToPoints()
	out := make([]geom.Point, len(pts))
	for i, pt := range pts {
		out[i] = geom.NewPoint(int64(pt.X), int64(pt.Y))
	}
	return geom.NewPolygon(out)
}

// largestAreaContour returns the index of the contour with the largest
// area, which is taken as the free region's outer boundary.
func largestAreaContour(contours gocv.PointsVector) int {
	best := 0
	bestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		a := gocv.ContourArea(contours.At(i))
		if a > bestArea {
			bestArea = a
			best = i
		}
	}
	return best
}

// hierarchyParent reads the parent index (column 3) of contour i from the
// hierarchy matrix produced by FindContoursWithParams, matching the
// next/prev/firstChild/parent int32 quadruple OpenCV's findContours
// produces.
func hierarchyParent(hierarchy gocv.Mat, i int) int {
	return int(hierarchy.GetIntAt(0, i*4+3))
}

// boundingRect computes the axis-aligned bounding rectangle of 4 ROI
// corners and returns it along with its top-left corner, which callers must
// add back to every extracted vertex so outputs stay in the original
// image frame.
func boundingRect(roi [4]image.Point) (image.Rectangle, image.Point) {
	xs := []int{roi[0].X, roi[1].X, roi[2].X, roi[3].X}
	ys := []int{roi[0].Y, roi[1].Y, roi[2].Y, roi[3].Y}
	sort.Ints(xs)
	sort.Ints(ys)
	tl := image.Pt(xs[0], ys[0])
	return image.Rect(xs[0], ys[0], xs[3], ys[3]), tl
}
