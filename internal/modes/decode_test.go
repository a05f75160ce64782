package modes

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeHex(t *testing.T, s string) (*Frame, error) {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return Decode(b)
}

func TestDecodeIdentification(t *testing.T) {
	f, err := decodeHex(t, "8D4840D6202CC371C32CE0576098")
	require.NoError(t, err)

	assert.EqualValues(t, 17, f.DF)
	assert.Equal(t, "4840D6", f.ICAO.String())

	id, ok := f.ME.(AircraftIdentification)
	require.True(t, ok)
	assert.Equal(t, CategorySetA, id.Set)
	assert.EqualValues(t, 0, id.Category)
	assert.Equal(t, "KLM1023 ", id.Callsign)
}

func TestDecodeAirbornePositionBaro(t *testing.T) {
	f, err := decodeHex(t, "8D40621D58C382D690C8AC2863A7")
	require.NoError(t, err)

	assert.Equal(t, "40621D", f.ICAO.String())
	pos, ok := f.ME.(AirbornePosition)
	require.True(t, ok)
	assert.Equal(t, 38000, pos.Altitude.Feet)
	assert.Equal(t, CPREven, pos.Format)
	assert.EqualValues(t, 93000, pos.LatCPR)
	assert.EqualValues(t, 51372, pos.LonCPR)
}

func TestDecodeAirbornePositionGNSS(t *testing.T) {
	// Same body as the barometric frame above with TC rewritten to 20:
	// the altitude field goes through the identical q-bit split.
	f, err := decodeHex(t, "8D40621DA0C382D690C8AC2863A7")
	require.NoError(t, err)

	pos, ok := f.ME.(AirbornePosition)
	require.True(t, ok)
	assert.True(t, pos.GNSS)
	assert.Equal(t, 38000, pos.Altitude.Feet)
	assert.Equal(t, UnitFeet, pos.Altitude.Unit)
	assert.Equal(t, CPREven, pos.Format)
	assert.EqualValues(t, 93000, pos.LatCPR)
	assert.EqualValues(t, 51372, pos.LonCPR)
}

func TestDecodeGroundSpeedVelocity(t *testing.T) {
	f, err := decodeHex(t, "8D485020994409940838175B284F")
	require.NoError(t, err)

	v, ok := f.ME.(*AirborneVelocity)
	require.True(t, ok)
	require.NotNil(t, v.GroundSpeed)

	heading, speed, ok := v.Calculate()
	require.True(t, ok)
	assert.InDelta(t, 182.88, heading, 1.0)
	assert.InDelta(t, 159, speed, 2.0)

	rate, ok := v.VerticalRate()
	require.True(t, ok)
	assert.Equal(t, -832, rate)
}

func TestDecodeAirspeedVelocity(t *testing.T) {
	f, err := decodeHex(t, "8DA05F219B06B6AF189400CBC33F")
	require.NoError(t, err)

	assert.Equal(t, "A05F21", f.ICAO.String())
	v, ok := f.ME.(*AirborneVelocity)
	require.True(t, ok)
	require.NotNil(t, v.Airspeed)
}

func TestDecodeOperationStatusAirborneVersion(t *testing.T) {
	f, err := decodeHex(t, "8D4CA251EA428860015F4DC16D1A")
	require.NoError(t, err)

	status, ok := f.ME.(AircraftOperationStatus)
	require.True(t, ok)
	require.NotNil(t, status.Airborne)
	assert.Equal(t, DOC9871AppendixB, status.Airborne.Version)
}

func TestDecodeTruncatedInputFails(t *testing.T) {
	b, err := hex.DecodeString("8D4840D6")
	require.NoError(t, err)
	_, err = Decode(b)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, NotEnoughBits, de.Kind)
}

func TestDecodeTrailingBytesFails(t *testing.T) {
	b, err := hex.DecodeString("8D4840D6202CC371C32CE057609800")
	require.NoError(t, err)
	_, err = Decode(b)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, TrailingBytes, de.Kind)
}

func TestDecodeUnsupportedDF(t *testing.T) {
	// DF=0 (all-call reply), not in {17,18}.
	b, err := hex.DecodeString("0000000000000000000000000000")
	require.NoError(t, err)
	_, err = Decode(b)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnsupportedDF, de.Kind)
}

func TestAltitudeQ1Invariant(t *testing.T) {
	for raw := uint16(0); raw < 4096; raw++ {
		if raw&0x10 == 0 {
			continue
		}
		alt := decodeBarometricAltitude(raw)
		assert.True(t, alt.Feet >= -1000 && alt.Feet <= 126675,
			"raw=%d feet=%d out of range", raw, alt.Feet)
		assert.Zero(t, (alt.Feet+1000)%25)
	}
}

func TestVerticalRateZeroIsNoData(t *testing.T) {
	v := &AirborneVelocity{VerticalRateValue: 0}
	_, ok := v.VerticalRate()
	assert.False(t, ok)
}

func TestGroundSpeedUnderflowIsNoData(t *testing.T) {
	v := &AirborneVelocity{GroundSpeed: &GroundSpeedDecoding{EWVel: 1, NSVel: 1}}
	heading, speed, ok := v.Calculate()
	require.True(t, ok)
	assert.Zero(t, heading)
	assert.Zero(t, speed)
}

func TestGroundSpeedZeroVelIsNoData(t *testing.T) {
	v := &AirborneVelocity{GroundSpeed: &GroundSpeedDecoding{EWVel: 0, NSVel: 5}}
	_, _, ok := v.Calculate()
	assert.False(t, ok)
}

func TestTargetStateAltitudeRescale(t *testing.T) {
	assert.Equal(t, 0, TargetStateAndStatusInformation{AltitudeRaw: 0}.Altitude())
	assert.Equal(t, 0, TargetStateAndStatusInformation{AltitudeRaw: 1}.Altitude())
	assert.Equal(t, 32, TargetStateAndStatusInformation{AltitudeRaw: 2}.Altitude())
}

func TestTargetStateQNHRescale(t *testing.T) {
	assert.Equal(t, 0.0, TargetStateAndStatusInformation{QNHRaw: 0}.QNH())
	assert.Equal(t, 800.0, TargetStateAndStatusInformation{QNHRaw: 1}.QNH())
	assert.InDelta(t, 800.8, TargetStateAndStatusInformation{QNHRaw: 2}.QNH(), 1e-9)
}

func TestDecodeID13Digits(t *testing.T) {
	for raw := uint16(0); raw < 8192; raw += 37 {
		packed := decodeID13(raw)
		a := (packed >> 12) & 0xF
		b := (packed >> 8) & 0xF
		c := (packed >> 4) & 0xF
		d := packed & 0xF
		assert.LessOrEqual(t, a, uint16(7))
		assert.LessOrEqual(t, b, uint16(7))
		assert.LessOrEqual(t, c, uint16(7))
		assert.LessOrEqual(t, d, uint16(7))
	}
}

func TestReservedTypeCodeRange(t *testing.T) {
	br := newBitReader(make([]byte, 7))
	if _, err := br.readBits(5); err != nil {
		t.Fatal(err)
	}
	me, err := decodeReserved(br)
	require.NoError(t, err)
	assert.Equal(t, Reserved{}, me)
}

func TestUnsupportedControlField(t *testing.T) {
	// DF=18 (10010...), control field = 2 (010), TIS-B fine: reserved.
	b, err := hex.DecodeString("92000000000000000000000000" + "00")
	require.NoError(t, err)
	_, err = Decode(b)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnsupportedControlField, de.Kind)
}

func TestCallsignCharsetIsRestricted(t *testing.T) {
	allowed := map[byte]bool{}
	for _, c := range callsignTable {
		allowed[c] = true
	}
	for _, c := range []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 #") {
		assert.True(t, allowed[c], "character %q should be reachable", c)
	}
}
