package geom

import "strconv"

func fmtFloatPair(x, y float64) string {
	return "(" + strconv.FormatFloat(x, 'g', -1, 64) + ", " +
		strconv.FormatFloat(y, 'g', -1, 64) + ")"
}
