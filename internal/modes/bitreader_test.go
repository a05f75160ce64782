package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBitsStraddlesBytes(t *testing.T) {
	br := newBitReader([]byte{0b10110011, 0b01011100})

	v, err := br.readBits(3)
	require.NoError(t, err)
	assert.EqualValues(t, 0b101, v)

	// next 7 bits straddle the byte boundary
	v, err = br.readBits(7)
	require.NoError(t, err)
	assert.EqualValues(t, 0b1001101, v)

	assert.Equal(t, 6, br.remaining())
}

func TestReadBitsExhaustsExactly(t *testing.T) {
	br := newBitReader([]byte{0xFF, 0x00})

	v, err := br.readBits(16)
	require.NoError(t, err)
	assert.EqualValues(t, 0xFF00, v)
	assert.Zero(t, br.remaining())

	_, err = br.readBits(1)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, NotEnoughBits, de.Kind)
}

func TestReadBitsZeroWidth(t *testing.T) {
	br := newBitReader(nil)
	v, err := br.readBits(0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestReadBitsRejectsBadWidth(t *testing.T) {
	br := newBitReader(make([]byte, 16))
	_, err := br.readBits(65)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DiscriminantOutOfRange, de.Kind)
}

func TestReadBool(t *testing.T) {
	br := newBitReader([]byte{0b10000000})
	b, err := br.readBool()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = br.readBool()
	require.NoError(t, err)
	assert.False(t, b)
}

func TestReadBytes(t *testing.T) {
	br := newBitReader([]byte{0xAB, 0xCD, 0xEF})
	got, err := br.readBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD}, got)

	_, err = br.readBytes(2)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, NotEnoughBits, de.Kind)
}
