package beast

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func TestReadMessageModeLong(t *testing.T) {
	raw := []byte{
		SyncByte, ModeLong,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x02, // timestamp
		0x03, // signal
		0x8D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78, 0x9A,
		0xBC, 0xDE, 0xF0, 0x12, 0x34, 0x56,
	}

	d := NewDecoder(bytes.NewReader(raw), testLogger())
	msg, err := d.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, byte(ModeLong), msg.Type)
	assert.Equal(t, byte(0x03), msg.Signal)
	assert.Len(t, msg.Data, 14)
	assert.EqualValues(t, 0x4844, msg.GetICAO()>>8)
}

func TestReadMessageUnescapesSyncByte(t *testing.T) {
	raw := []byte{
		SyncByte, ModeShort,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		SyncByte, SyncByte, // escaped signal byte == SyncByte
		0x5D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78,
	}

	d := NewDecoder(bytes.NewReader(raw), testLogger())
	msg, err := d.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, byte(SyncByte), msg.Signal)
	assert.Len(t, msg.Data, 7)
}

func TestReadMessageSkipsUnknownType(t *testing.T) {
	raw := []byte{
		SyncByte, 0x99, // unknown type, should be skipped
		SyncByte, ModeAC,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x03,
		0x04,
		0x02, 0x34,
	}

	d := NewDecoder(bytes.NewReader(raw), testLogger())
	msg, err := d.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, byte(ModeAC), msg.Type)
	assert.Len(t, msg.Data, 2)
}

func TestGetICAOOnlyForModeS(t *testing.T) {
	m := &Message{Type: ModeAC, Data: []byte{0x02, 0x34}}
	assert.Zero(t, m.GetICAO())
	assert.Zero(t, m.GetDF())
}

func TestReadMessageEOF(t *testing.T) {
	d := NewDecoder(bytes.NewReader(nil), testLogger())
	_, err := d.ReadMessage()
	require.Error(t, err)
}
