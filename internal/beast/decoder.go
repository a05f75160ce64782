package beast

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Decoder reads Beast-format frames from a streaming connection, one
// at a time, resynchronizing on the sync byte whenever it sees a
// message type it doesn't recognize. It works byte-at-a-time over an
// io.Reader since callers hand it a live net.Conn rather than a
// buffer.
type Decoder struct {
	r   *bufio.Reader
	log *logrus.Logger
}

// NewDecoder wraps r in a Beast protocol reader. A nil logger falls
// back to a default logrus.Logger so callers never need a nil check.
func NewDecoder(r io.Reader, log *logrus.Logger) *Decoder {
	if log == nil {
		log = logrus.New()
	}
	return &Decoder{r: bufio.NewReaderSize(r, 4096), log: log}
}

// readEscaped reads n logical payload bytes, collapsing every doubled
// 0x1A escape pair the wire format uses to keep the sync byte
// unambiguous inside the timestamp/signal/data fields.
func (d *Decoder) readEscaped(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == SyncByte {
			next, err := d.r.ReadByte()
			if err != nil {
				return nil, err
			}
			if next != SyncByte {
				return nil, fmt.Errorf("beast: unescaped sync byte inside message body")
			}
		}
		out = append(out, b)
	}
	return out, nil
}

// ReadMessage reads and decodes the next Beast frame. It blocks until a
// complete message arrives, an unrecoverable read error occurs, or the
// underlying connection is closed (io.EOF). Unknown message types are
// logged at Debug and skipped; a corrupt frame on a live feed is
// routine, never fatal.
func (d *Decoder) ReadMessage() (*Message, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != SyncByte {
			continue
		}

		typ, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}

		n := dataLength(typ)
		if n < 0 {
			d.log.WithField("type", fmt.Sprintf("0x%02x", typ)).Debug("beast: unknown message type, resyncing")
			continue
		}

		header, err := d.readEscaped(7) // 6-byte timestamp + 1-byte signal
		if err != nil {
			return nil, err
		}
		data, err := d.readEscaped(n)
		if err != nil {
			return nil, err
		}

		var ticks uint64
		for i := 0; i < 6; i++ {
			ticks = (ticks << 8) | uint64(header[i])
		}

		msg := &Message{
			Type: typ,
			// The onboard clock is a 12MHz counter since capture
			// start, not wall-clock time; approximate a time.Time from
			// it rather than requiring a receiver-side clock sync
			// handshake.
			Timestamp: time.Now().Add(-time.Duration(ticks) * time.Nanosecond / 12),
			Signal:    header[6],
			Data:      data,
		}

		d.log.WithFields(logrus.Fields{
			"type": fmt.Sprintf("0x%02x", typ),
			"len":  len(data),
		}).Debug("beast: decoded message")

		return msg, nil
	}
}
