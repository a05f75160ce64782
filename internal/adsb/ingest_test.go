package adsb

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJPARKINSON/squitter1090/internal/modes"
)

func ingestHex(t *testing.T, am *AircraftMap, s string) *Aircraft {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	frame, err := modes.Decode(b)
	require.NoError(t, err)
	return am.Ingest(frame, 100, s2.LatLng{}, false)
}

func TestIngestIdentification(t *testing.T) {
	am := newTestMap(t)
	a := ingestHex(t, am, "8D4840D6202CC371C32CE0576098")

	assert.EqualValues(t, 0x4840D6, a.ICAO)
	assert.Equal(t, "KLM1023 ", a.Flight)
	assert.Equal(t, 1, a.Messages)
	assert.EqualValues(t, 100, a.SignalLevel[0])
}

func TestIngestVelocity(t *testing.T) {
	am := newTestMap(t)
	a := ingestHex(t, am, "8D485020994409940838175B284F")

	assert.Equal(t, 182, a.Heading)
	assert.InDelta(t, 159, a.Speed, 2)
	assert.Equal(t, -832, a.VertRate)
}

func TestIngestPositionPairResolves(t *testing.T) {
	am := newTestMap(t)

	a := ingestHex(t, am, "8D40621D58C382D690C8AC2863A7")
	assert.Equal(t, 38000, a.Altitude)
	// one half of a CPR pair on its own never yields a fix
	assert.Zero(t, a.Lat)
	assert.Zero(t, a.Lon)

	ingestHex(t, am, "8D40621D58C386435CC412692AD6")

	// the odd report arrived last, so the fix is odd-anchored
	assert.InDelta(t, 52.2658, a.Lat, 0.001)
	assert.InDelta(t, 3.9389, a.Lon, 0.001)
	assert.Len(t, a.Trail, 1)
	assert.Equal(t, 38000, a.Trail[0].Altitude)
}

func TestIngestPositionPairOutsideWindow(t *testing.T) {
	am := newTestMap(t)

	a := ingestHex(t, am, "8D40621D58C382D690C8AC2863A7")
	// push the even report out of the 10-second pairing window
	a.EvenCPRTime -= 60_000

	ingestHex(t, am, "8D40621D58C386435CC412692AD6")

	assert.Zero(t, a.Lat)
	assert.Zero(t, a.Lon)
}

func TestIngestImplausibleRangeDiscarded(t *testing.T) {
	am := newTestMap(t)
	antenna := s2.LatLngFromDegrees(37.6188, -122.3756) // far from the Dutch coast

	frames := []string{"8D40621D58C382D690C8AC2863A7", "8D40621D58C386435CC412692AD6"}
	var a *Aircraft
	for _, s := range frames {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		frame, err := modes.Decode(b)
		require.NoError(t, err)
		a = am.Ingest(frame, 100, antenna, true)
	}

	assert.Zero(t, a.Lat)
	assert.Zero(t, a.Lon)
}

func TestIngestSquawk(t *testing.T) {
	am := newTestMap(t)
	// TC=28 subtype 1, squawk digits 3-2-7-3 in the ID-13 interleave
	a := ingestHex(t, am, "8D4840D6E11F1C000000004840D6")
	assert.EqualValues(t, 0x3273, a.Squawk)
}

func TestIngestUpdatesSeen(t *testing.T) {
	am := newTestMap(t)
	before := time.Now()
	a := ingestHex(t, am, "8D4840D6202CC371C32CE0576098")
	assert.False(t, a.Seen.Before(before))
}
