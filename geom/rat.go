package geom

import "math/big"

// RatFromInt64 is a small convenience wrapper around big.NewRat for whole
// numbers, used throughout the pipeline wherever a pixel coordinate needs to
// become an exact rational.
func RatFromInt64(v int64) *big.Rat {
	return big.NewRat(v, 1)
}
