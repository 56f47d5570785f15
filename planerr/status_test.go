package planerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	err := New(DegeneratePolygon, "bcd", "coincident vertices")
	assert.Equal(t, "bcd: degenerate polygon: coincident vertices", err.Error())

	bare := New(InvalidMap, "imaging", "")
	assert.Equal(t, "imaging: invalid map", bare.Error())
}

func TestStatusIsMatchesByKind(t *testing.T) {
	err := New(SweepEmpty, "sweep", "cell 3")
	assert.True(t, errors.Is(err, New(SweepEmpty, "", "")))
	assert.False(t, errors.Is(err, New(InvalidMap, "", "")))
}

func TestRecoverableKinds(t *testing.T) {
	assert.True(t, NumericDegenerate.Recoverable())
	assert.True(t, SweepEmpty.Recoverable())
	assert.False(t, InvalidMap.Recoverable())
	assert.False(t, DegeneratePolygon.Recoverable())
	assert.False(t, DecompositionFailure.Recoverable())
	assert.False(t, StartOutOfRegion.Recoverable())
	assert.False(t, InvalidParameter.Recoverable())
}
