package modes

// Altitude is the decoded value of a 12-bit barometric or GNSS height
// field.
type Altitude struct {
	Feet int
	Unit Unit
}

// SurfacePosition is ME TC 5-8: ground movement, track, and a raw CPR
// pair. Only raw extraction happens here; pairing even/odd frames into
// a resolved lat/lon is the tracker's job.
type SurfacePosition struct {
	Movement    uint8 // 7 bits
	GroundTrack bool  // status-for-ground-track
	Track       uint8 // 7 bits
	Time        bool
	Format      CPRFormat
	LatCPR      uint32 // 17 bits
	LonCPR      uint32 // 17 bits
}

func (SurfacePosition) isMEBody() {}

func decodeSurfacePosition(br *bitReader) (MEBody, error) {
	movement, err := br.readBits(7)
	if err != nil {
		return nil, err
	}
	groundTrack, err := br.readBool()
	if err != nil {
		return nil, err
	}
	track, err := br.readBits(7)
	if err != nil {
		return nil, err
	}
	timeBit, err := br.readBool()
	if err != nil {
		return nil, err
	}
	format, err := br.readBool()
	if err != nil {
		return nil, err
	}
	lat, err := br.readBits(17)
	if err != nil {
		return nil, err
	}
	lon, err := br.readBits(17)
	if err != nil {
		return nil, err
	}

	f := CPREven
	if format {
		f = CPROdd
	}

	return SurfacePosition{
		Movement:    uint8(movement),
		GroundTrack: groundTrack,
		Track:       uint8(track),
		Time:        timeBit,
		Format:      f,
		LatCPR:      uint32(lat),
		LonCPR:      uint32(lon),
	}, nil
}

// AirbornePosition is ME TC 9-18 (barometric) or TC 20-22 (GNSS): an
// Altitude plus a raw CPR pair.
type AirbornePosition struct {
	SurveillanceStatus uint8 // 2 bits
	SingleAntenna      bool  // NICsb
	Altitude           Altitude
	Time               bool
	Format             CPRFormat
	LatCPR             uint32 // 17 bits
	LonCPR             uint32 // 17 bits
	GNSS               bool
}

func (AirbornePosition) isMEBody() {}

func decodeAirbornePosition(br *bitReader, unit Unit, gnss bool) (MEBody, error) {
	ss, err := br.readBits(2)
	if err != nil {
		return nil, err
	}
	singleAntenna, err := br.readBool()
	if err != nil {
		return nil, err
	}
	rawAlt, err := br.readBits(12)
	if err != nil {
		return nil, err
	}
	timeBit, err := br.readBool()
	if err != nil {
		return nil, err
	}
	format, err := br.readBool()
	if err != nil {
		return nil, err
	}
	lat, err := br.readBits(17)
	if err != nil {
		return nil, err
	}
	lon, err := br.readBits(17)
	if err != nil {
		return nil, err
	}

	var alt Altitude
	if gnss {
		alt = decodeGNSSAltitude(uint16(rawAlt), unit)
	} else {
		alt = decodeBarometricAltitude(uint16(rawAlt))
	}

	f := CPREven
	if format {
		f = CPROdd
	}

	return AirbornePosition{
		SurveillanceStatus: uint8(ss),
		SingleAntenna:      singleAntenna,
		Altitude:           alt,
		Time:               timeBit,
		Format:             f,
		LatCPR:             uint32(lat),
		LonCPR:             uint32(lon),
		GNSS:               gnss,
	}, nil
}

// decodeBarometricAltitude unpacks a 12-bit field
// whose bit 4 (0-indexed from the LSB) is the q-bit. q=1 means the
// remaining 11 bits are a direct binary count of 25-ft increments
// above a -1000 ft floor; q=0 means they're Gillham-coded and must go
// through the Gray-to-binary permutation in gillham.go.
func decodeBarometricAltitude(raw12 uint16) Altitude {
	q := raw12&0x10 != 0
	n11 := ((raw12 >> 5) << 4) | (raw12 & 0xF)

	if q {
		return Altitude{Feet: int(n11)*25 - 1000, Unit: UnitFeet}
	}

	feet, ok := gillhamAltitude(n11)
	if !ok {
		return Altitude{Feet: 0, Unit: UnitFeet}
	}
	return Altitude{Feet: feet, Unit: UnitFeet}
}

// decodeGNSSAltitude runs the identical q-bit split as the barometric
// field; only the unit tag differs, and the wire value is feet when
// the tag says feet.
func decodeGNSSAltitude(raw12 uint16, unit Unit) Altitude {
	alt := decodeBarometricAltitude(raw12)
	alt.Unit = unit
	return alt
}
