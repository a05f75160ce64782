package adsb

import (
	"time"

	"github.com/OJPARKINSON/squitter1090/internal/modes"
	"github.com/golang/geo/s2"
)

// maxPlausibleRangeKm bounds how far a resolved CPR position may sit
// from the antenna before it's treated as a bad pairing (e.g. a stale
// even/odd mismatch) and discarded rather than stored. 600km covers
// any realistic Mode-S reception range at altitude with margin.
const maxPlausibleRangeKm = 600.0

// Ingest folds one decoded frame into the aircraft it belongs to,
// creating the entry on first sighting. The decoder stays stateless;
// this is where a *modes.Frame accumulates into per-aircraft
// telemetry.
func (am *AircraftMap) Ingest(frame *modes.Frame, signal byte, antenna s2.LatLng, haveAntenna bool) *Aircraft {
	a := am.GetOrCreate(uint32(frame.ICAO))

	switch me := frame.ME.(type) {
	case modes.AircraftIdentification:
		if me.Callsign != "" {
			a.Flight = me.Callsign
		}
	case modes.AirbornePosition:
		a.Altitude = me.Altitude.Feet
		am.ingestCPR(a, me.Format, me.LatCPR, me.LonCPR, antenna, haveAntenna)
	case modes.SurfacePosition:
		a.OnGround = true
		am.ingestCPR(a, me.Format, me.LatCPR, me.LonCPR, antenna, haveAntenna)
	case *modes.AirborneVelocity:
		if heading, speed, ok := me.Calculate(); ok {
			a.Heading = int(heading)
			a.Speed = int(speed)
		}
		if rate, ok := me.VerticalRate(); ok {
			a.VertRate = rate
		}
	case modes.AircraftStatus:
		a.Squawk = me.Squawk
	}

	a.Seen = time.Now()
	a.SignalLevel[a.Messages%8] = signal
	a.Messages++

	return a
}

func (am *AircraftMap) ingestCPR(a *Aircraft, format modes.CPRFormat, lat, lon uint32, antenna s2.LatLng, haveAntenna bool) {
	now := time.Now().UnixNano() / int64(time.Millisecond)

	if format == modes.CPROdd {
		a.OddCPRLat, a.OddCPRLon, a.OddCPRTime = lat, lon, now
	} else {
		a.EvenCPRLat, a.EvenCPRLon, a.EvenCPRTime = lat, lon, now
	}

	if a.EvenCPRTime == 0 || a.OddCPRTime == 0 {
		return
	}
	if abs64(a.EvenCPRTime-a.OddCPRTime) > 10000 {
		return
	}

	resolved, ok := resolveCPRPair(a.EvenCPRLat, a.EvenCPRLon, a.OddCPRLat, a.OddCPRLon, format == modes.CPROdd)
	if !ok {
		return
	}

	if haveAntenna {
		rangeKm := s2.ChordAngleBetweenPoints(s2.PointFromLatLng(antenna), s2.PointFromLatLng(resolved)).Angle().Radians() * earthRadiusKm
		if rangeKm > maxPlausibleRangeKm {
			return
		}
	}

	a.Lat = resolved.Lat.Degrees()
	a.Lon = resolved.Lng.Degrees()
	a.SeenLatLon = time.Now()

	if len(a.Trail) >= TrailLength {
		a.Trail = a.Trail[1:]
	}
	a.Trail = append(a.Trail, Position{
		Lat: a.Lat, Lon: a.Lon, Altitude: a.Altitude, Heading: a.Heading, Timestamp: a.SeenLatLon,
	})
}

const earthRadiusKm = 6371.0

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
