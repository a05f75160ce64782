package adsb

import (
	"math"

	"github.com/golang/geo/s2"
)

func cprMod(a, b int) int {
	res := a % b
	if res < 0 {
		res += b
	}
	return res
}

// cprNL is the number of CPR longitude zones at a latitude: the
// closed-form NL function from Doc 9871 with NZ=15, with the endpoint
// cases pinned (the formula's acos argument leaves [-1, 1] right at
// the pole band).
func cprNL(lat float64) int {
	lat = math.Abs(lat)
	if lat >= 87 {
		return 1
	}
	if lat == 0 {
		return 59
	}
	const nz = 15.0
	a := 1 - math.Cos(math.Pi/(2*nz))
	b := math.Cos(math.Pi / 180 * lat)
	return int(math.Floor(2 * math.Pi / math.Acos(1-a/(b*b))))
}

func cprN(lat float64, odd bool) int {
	nl := cprNL(lat)
	if odd {
		return nl - 1
	}
	return nl
}

func cprDlon(lat float64, odd bool) float64 {
	return 360.0 / float64(cprN(lat, odd))
}

// resolveCPRPair pairs an even and odd 17-bit CPR lat/lon report into
// a global position, per the canonical (dump1090-derived) global CPR
// algorithm. lastOdd selects which of the pair is the more recent
// report, which determines which decoded latitude anchors the
// longitude computation. ok is false when the pair straddles a
// latitude-zone boundary and cannot be resolved.
func resolveCPRPair(evenLat, evenLon, oddLat, oddLon uint32, lastOdd bool) (s2.LatLng, bool) {
	const airDlat0 = 360.0 / 60.0
	const airDlat1 = 360.0 / 59.0

	rlat0 := float64(evenLat) / 131072.0
	rlat1 := float64(oddLat) / 131072.0
	rlon0 := float64(evenLon) / 131072.0
	rlon1 := float64(oddLon) / 131072.0

	j := int(math.Floor((59.0*rlat0 - 60.0*rlat1) + 0.5))

	lat0 := airDlat0 * (float64(cprMod(j, 60)) + rlat0)
	lat1 := airDlat1 * (float64(cprMod(j, 59)) + rlat1)

	if lat0 >= 270 {
		lat0 -= 360
	}
	if lat1 >= 270 {
		lat1 -= 360
	}

	if cprNL(lat0) != cprNL(lat1) {
		return s2.LatLng{}, false
	}

	lat := lat0
	if lastOdd {
		lat = lat1
	}
	if lat < -90 || lat > 90 {
		return s2.LatLng{}, false
	}

	m := int(math.Floor(((rlon0 * float64(cprNL(lat)-1)) - (rlon1 * float64(cprNL(lat)))) + 0.5))

	var lon float64
	if lastOdd {
		ni := cprN(lat, true)
		if ni == 0 {
			return s2.LatLng{}, false
		}
		lon = cprDlon(lat, true) * (float64(cprMod(m, ni)) + rlon1)
	} else {
		ni := cprN(lat, false)
		if ni == 0 {
			return s2.LatLng{}, false
		}
		lon = cprDlon(lat, false) * (float64(cprMod(m, ni)) + rlon0)
	}

	if lon > 180 {
		lon -= 360
	}

	return s2.LatLngFromDegrees(lat, lon), true
}
