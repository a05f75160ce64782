package adsb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap(t *testing.T) *AircraftMap {
	t.Helper()
	return NewAircraftMap(time.Minute, time.Minute, nil)
}

func TestGetUnknownAircraft(t *testing.T) {
	am := newTestMap(t)
	assert.Nil(t, am.Get(0x4840D6))
	assert.Zero(t, am.Len())
}

func TestGetOrCreateInterns(t *testing.T) {
	am := newTestMap(t)

	a := am.GetOrCreate(0x4840D6)
	require.NotNil(t, a)
	assert.EqualValues(t, 0x4840D6, a.ICAO)

	// same address comes back as the same record
	assert.Same(t, a, am.GetOrCreate(0x4840D6))
	assert.Same(t, a, am.Get(0x4840D6))
	assert.Equal(t, 1, am.Len())
}

func TestForEachAndCopy(t *testing.T) {
	am := newTestMap(t)
	am.GetOrCreate(0x111111)
	am.GetOrCreate(0x222222)

	seen := map[uint32]bool{}
	am.ForEach(func(icao uint32, a *Aircraft) {
		seen[icao] = true
	})
	assert.Len(t, seen, 2)
	assert.True(t, seen[0x111111])
	assert.True(t, seen[0x222222])

	snapshot := am.Copy()
	assert.Len(t, snapshot, 2)
	assert.Same(t, am.Get(0x111111), snapshot[0x111111])
}

func TestRemoveStale(t *testing.T) {
	am := newTestMap(t)

	old := am.GetOrCreate(0xAAAAAA)
	old.Seen = time.Now().Add(-time.Hour)
	am.GetOrCreate(0xBBBBBB)

	am.RemoveStale(30 * time.Second)

	assert.Nil(t, am.Get(0xAAAAAA))
	assert.NotNil(t, am.Get(0xBBBBBB))
	assert.Equal(t, 1, am.Len())
}
