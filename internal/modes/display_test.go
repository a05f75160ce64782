package modes

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStringIdentification(t *testing.T) {
	f, err := decodeHex(t, "8D4840D6202CC371C32CE0576098")
	require.NoError(t, err)

	want := "(Mode S / ADS-B)\n" +
		"  ICAO: 4840D6\n" +
		"  AircraftIdentification:\n" +
		"  Category: A0\n" +
		"  Callsign: \"KLM1023 \"\n"
	assert.Equal(t, want, f.String())
}

func TestFrameStringAirbornePosition(t *testing.T) {
	f, err := decodeHex(t, "8D40621D58C382D690C8AC2863A7")
	require.NoError(t, err)

	s := f.String()
	assert.Contains(t, s, "AirbornePositionBaroAltitude:\n")
	assert.Contains(t, s, "Altitude: 38000 ft\n")
	assert.Contains(t, s, "CPR: Even lat_cpr=93000 lon_cpr=51372\n")
}

func TestFrameStringVelocity(t *testing.T) {
	f, err := decodeHex(t, "8D485020994409940838175B284F")
	require.NoError(t, err)

	s := f.String()
	assert.Contains(t, s, "AirborneVelocity:\n")
	assert.Contains(t, s, "GroundSpeed: heading=")
	assert.Contains(t, s, "VerticalRate: -832 ft/min\n")
}

func TestFrameStringDeterministic(t *testing.T) {
	b, err := hex.DecodeString("8D4840D6202CC371C32CE0576098")
	require.NoError(t, err)

	f1, err := Decode(b)
	require.NoError(t, err)
	f2, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, f1.String(), f2.String())
}

func TestAddressTypeToken(t *testing.T) {
	assert.Equal(t, "(Mode S / ADS-B)", addressType(17))
	assert.Equal(t, "(ADS-R)", addressType(18))
}

func TestVelocityNoDataRendering(t *testing.T) {
	v := &AirborneVelocity{
		Subtype:     SubtypeGroundSpeedNormal,
		GroundSpeed: &GroundSpeedDecoding{EWVel: 0, NSVel: 0},
	}
	s := v.String()
	assert.Contains(t, s, "GroundSpeed: no data\n")
	assert.Contains(t, s, "VerticalRate: no data\n")
}

func TestSquawkDigitsRendering(t *testing.T) {
	// packed octal digits 7-5-0-0
	s := AircraftStatus{Squawk: 0x7500}.String()
	assert.True(t, strings.Contains(s, "Squawk: 7500\n"), "got %q", s)
}
