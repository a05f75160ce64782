package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The even/odd pair carried by the two classic 40621D position frames:
// even lat/lon 93000/51372, odd 74158/50194, which resolve to a fix
// just off the Dutch coast.
func TestResolveCPRPair(t *testing.T) {
	pos, ok := resolveCPRPair(93000, 51372, 74158, 50194, false)
	require.True(t, ok)
	assert.InDelta(t, 52.2572, pos.Lat.Degrees(), 0.0001)
	assert.InDelta(t, 3.91938, pos.Lng.Degrees(), 0.0001)
}

func TestResolveCPRPairOddAnchored(t *testing.T) {
	pos, ok := resolveCPRPair(93000, 51372, 74158, 50194, true)
	require.True(t, ok)
	// the odd-anchored latitude lands in the same zone, a fraction of
	// a degree from the even-anchored one
	assert.InDelta(t, 52.26, pos.Lat.Degrees(), 0.02)
}

func TestResolveCPRPairInconsistent(t *testing.T) {
	// An even report from near the equator paired with an odd report
	// from a high latitude decodes to a candidate latitude outside
	// [-90, 90]; the pair is unusable.
	_, ok := resolveCPRPair(20000, 0, 100000, 0, false)
	assert.False(t, ok)
}

func TestCPRNLBands(t *testing.T) {
	assert.Equal(t, 59, cprNL(0))
	assert.Equal(t, 36, cprNL(52.2572))
	assert.Equal(t, 1, cprNL(89))
	assert.Equal(t, 1, cprNL(-89))
	assert.Equal(t, cprNL(45), cprNL(-45))
}

func TestCPRModWrapsNegative(t *testing.T) {
	assert.Equal(t, 59, cprMod(-1, 60))
	assert.Equal(t, 0, cprMod(60, 60))
	assert.Equal(t, 5, cprMod(5, 60))
}
