package modes

import "math"

// VelocitySubtype is the 3-bit st field of ME TC 19.
type VelocitySubtype uint8

const (
	SubtypeGroundSpeedNormal     VelocitySubtype = 1
	SubtypeGroundSpeedSupersonic VelocitySubtype = 2
	SubtypeAirspeedNormal        VelocitySubtype = 3
	SubtypeAirspeedSupersonic    VelocitySubtype = 4
)

// GroundSpeedDecoding is the st∈{1,2} payload: signed east-west and
// north-south velocity components.
type GroundSpeedDecoding struct {
	EWSign bool
	EWVel  uint16 // 10 bits raw
	NSSign bool
	NSVel  uint16 // 10 bits raw
}

// AirspeedDecoding is the st∈{3,4} payload: magnetic heading and
// airspeed, both reported as raw magnitudes.
type AirspeedDecoding struct {
	StatusHeading bool
	MagHeading    uint16 // 10 bits raw
	AirspeedType  bool
	Airspeed      uint16 // 10 bits raw
}

// AirborneVelocity is ME TC 19. Exactly one of GroundSpeed or Airspeed
// is populated depending on Subtype.
type AirborneVelocity struct {
	Subtype            VelocitySubtype
	Extra              uint8 // 5 reserved/intent-change bits between st and the subtype payload
	GroundSpeed        *GroundSpeedDecoding
	Airspeed           *AirspeedDecoding
	VerticalRateSource bool // false=GNSS, true=barometric
	VerticalRateSign   bool
	VerticalRateValue  uint16 // 9 bits raw
	GNSSSign           bool
	GNSSBaroDiff       uint8 // 7 bits raw
}

func (AirborneVelocity) isMEBody() {}

func signOf(negative bool) int {
	if negative {
		return -1
	}
	return 1
}

func decodeAirborneVelocity(br *bitReader) (MEBody, error) {
	st, err := br.readBits(3)
	if err != nil {
		return nil, err
	}
	subtype := VelocitySubtype(st)

	extra, err := br.readBits(5)
	if err != nil {
		return nil, err
	}

	v := &AirborneVelocity{Subtype: subtype, Extra: uint8(extra)}

	switch subtype {
	case SubtypeGroundSpeedNormal, SubtypeGroundSpeedSupersonic:
		ewSign, err := br.readBool()
		if err != nil {
			return nil, err
		}
		ewVel, err := br.readBits(10)
		if err != nil {
			return nil, err
		}
		nsSign, err := br.readBool()
		if err != nil {
			return nil, err
		}
		nsVel, err := br.readBits(10)
		if err != nil {
			return nil, err
		}
		v.GroundSpeed = &GroundSpeedDecoding{
			EWSign: ewSign, EWVel: uint16(ewVel),
			NSSign: nsSign, NSVel: uint16(nsVel),
		}
	case SubtypeAirspeedNormal, SubtypeAirspeedSupersonic:
		statusHeading, err := br.readBool()
		if err != nil {
			return nil, err
		}
		magHeading, err := br.readBits(10)
		if err != nil {
			return nil, err
		}
		airspeedType, err := br.readBool()
		if err != nil {
			return nil, err
		}
		airspeed, err := br.readBits(10)
		if err != nil {
			return nil, err
		}
		v.Airspeed = &AirspeedDecoding{
			StatusHeading: statusHeading, MagHeading: uint16(magHeading),
			AirspeedType: airspeedType, Airspeed: uint16(airspeed),
		}
	default:
		return nil, newErr(DiscriminantOutOfRange, "airborne velocity subtype")
	}

	vrateSrc, err := br.readBool()
	if err != nil {
		return nil, err
	}
	vrateSign, err := br.readBool()
	if err != nil {
		return nil, err
	}
	vrateValue, err := br.readBits(9)
	if err != nil {
		return nil, err
	}
	if _, err := br.readBits(2); err != nil { // reserved
		return nil, err
	}
	gnssSign, err := br.readBool()
	if err != nil {
		return nil, err
	}
	gnssBaroDiff, err := br.readBits(7)
	if err != nil {
		return nil, err
	}

	v.VerticalRateSource = vrateSrc
	v.VerticalRateSign = vrateSign
	v.VerticalRateValue = uint16(vrateValue)
	v.GNSSSign = gnssSign
	v.GNSSBaroDiff = uint8(gnssBaroDiff)

	return v, nil
}

// Calculate returns heading in degrees [0,360), ground speed in knots,
// and ok=false if either velocity component is "no data" (raw value
// 0). It is only meaningful when GroundSpeed is set.
func (v *AirborneVelocity) Calculate() (headingDeg, speedKt float64, ok bool) {
	if v.GroundSpeed == nil {
		return 0, 0, false
	}
	gs := v.GroundSpeed
	if gs.EWVel == 0 || gs.NSVel == 0 {
		return 0, 0, false
	}

	scale := 1
	if v.Subtype == SubtypeGroundSpeedSupersonic {
		scale = 4
	}

	vEW := float64(int(gs.EWVel)-1) * float64(signOf(gs.EWSign)) * float64(scale)
	vNS := float64(int(gs.NSVel)-1) * float64(signOf(gs.NSSign)) * float64(scale)

	heading := math.Atan2(vEW, vNS) * 180 / math.Pi
	if heading < 0 {
		heading += 360
	}

	speed := math.Hypot(vEW, vNS)

	return heading, speed, true
}

// VerticalRate returns feet-per-minute, or ok=false when the raw value
// is 0 ("no data").
func (v *AirborneVelocity) VerticalRate() (fpm int, ok bool) {
	if v.VerticalRateValue == 0 {
		return 0, false
	}
	rate := (int(v.VerticalRateValue) - 1) * 64
	if v.VerticalRateSign {
		rate = -rate
	}
	return rate, true
}

// GNSSBaroDelta returns the GNSS/barometric altitude difference in
// feet, 0 when the raw field underflows.
func (v *AirborneVelocity) GNSSBaroDelta() int {
	if v.GNSSBaroDiff < 2 {
		return 0
	}
	delta := (int(v.GNSSBaroDiff) - 1) * 25
	if v.GNSSSign {
		delta = -delta
	}
	return delta
}
