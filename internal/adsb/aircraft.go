// Package adsb is the aircraft-tracking store sitting above the
// stateless decoder in internal/modes. It accumulates decoded frames
// under their ICAO key, pairs even/odd CPR reports into a resolved
// position, and prunes aircraft that have gone quiet.
package adsb

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// TrailLength defines how many historical positions to keep per
// aircraft for the renderer's trail overlay.
const TrailLength = 120

// Aircraft is a tracked aircraft with its last-known telemetry and a
// short position history.
type Aircraft struct {
	ICAO         uint32
	Flight       string
	Altitude     int
	Speed        int
	Heading      int
	VertRate     int
	Lat          float64
	Lon          float64
	Seen         time.Time
	SeenLatLon   time.Time
	X            int
	Y            int
	OnGround     bool
	SignalLevel  [8]byte
	EvenCPRLat   uint32
	EvenCPRLon   uint32
	OddCPRLat    uint32
	OddCPRLon    uint32
	EvenCPRTime  int64
	OddCPRTime   int64
	Squawk       uint16
	Trail        []Position
	LabelX       float64
	LabelY       float64
	LabelW       float64
	LabelH       float64
	LabelDX      float64
	LabelDY      float64
	LabelOpacity float64
	Messages     int
}

// Position is one historical fix in an aircraft's trail.
type Position struct {
	Lat       float64
	Lon       float64
	Altitude  int
	Heading   int
	Timestamp time.Time
}

// AircraftMap is the ICAO-keyed, TTL-backed aircraft store. It wraps
// github.com/patrickmn/go-cache so entries expire automatically
// instead of requiring an external age scan over a plain map, while
// keeping the Get/GetOrCreate/ForEach/Copy/Len surface the renderer
// and application loop already expect.
type AircraftMap struct {
	store *cache.Cache
	ttl   time.Duration
	log   *logrus.Logger
}

// NewAircraftMap creates an aircraft store whose entries expire ttl
// after their last update, swept every cleanupInterval.
func NewAircraftMap(ttl, cleanupInterval time.Duration, log *logrus.Logger) *AircraftMap {
	if log == nil {
		log = logrus.New()
	}
	return &AircraftMap{
		store: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		log:   log,
	}
}

func (am *AircraftMap) key(icao uint32) string {
	return strconvICAO(icao)
}

// Get retrieves an aircraft by ICAO address, or nil if unseen/expired.
func (am *AircraftMap) Get(icao uint32) *Aircraft {
	v, ok := am.store.Get(am.key(icao))
	if !ok {
		return nil
	}
	return v.(*Aircraft)
}

// GetOrCreate retrieves an aircraft, creating and storing a fresh one
// on first sighting, and slides its expiration forward.
func (am *AircraftMap) GetOrCreate(icao uint32) *Aircraft {
	key := am.key(icao)
	if v, ok := am.store.Get(key); ok {
		a := v.(*Aircraft)
		am.store.Set(key, a, am.ttl)
		return a
	}

	a := &Aircraft{
		ICAO:  icao,
		Seen:  time.Now(),
		Trail: make([]Position, 0, TrailLength),
	}
	am.store.Set(key, a, am.ttl)
	am.log.WithField("icao", a.ICAO).Debug("tracking new aircraft")
	return a
}

// Len returns the number of live (non-expired) aircraft.
func (am *AircraftMap) Len() int {
	return am.store.ItemCount()
}

// ForEach executes f for each live aircraft.
func (am *AircraftMap) ForEach(f func(icao uint32, aircraft *Aircraft)) {
	for _, item := range am.store.Items() {
		a := item.Object.(*Aircraft)
		f(a.ICAO, a)
	}
}

// RemoveStale is a no-op maintenance hook kept for API parity: go-cache
// already evicts entries on its own cleanup interval. It still forces
// an application-level time check so truly idle entries whose last Set
// predates a sudden ttl decrease are dropped promptly.
func (am *AircraftMap) RemoveStale(ttl time.Duration) {
	now := time.Now()
	for _, item := range am.store.Items() {
		a := item.Object.(*Aircraft)
		if now.Sub(a.Seen) > ttl {
			am.store.Delete(am.key(a.ICAO))
		}
	}
}

// Copy returns a point-in-time snapshot suitable for rendering without
// holding the store's internal lock for the duration of a frame.
func (am *AircraftMap) Copy() map[uint32]*Aircraft {
	out := make(map[uint32]*Aircraft, am.store.ItemCount())
	for _, item := range am.store.Items() {
		a := item.Object.(*Aircraft)
		out[a.ICAO] = a
	}
	return out
}

func strconvICAO(icao uint32) string {
	const hexdigits = "0123456789ABCDEF"
	buf := [6]byte{}
	for i := 5; i >= 0; i-- {
		buf[i] = hexdigits[icao&0xF]
		icao >>= 4
	}
	return string(buf[:])
}
