package modes

// CapabilityCode is the 16-bit prologue common to both OperationStatus
// sub-variants.
type CapabilityCode struct {
	ACAS bool
	CDTI bool
	ARV  bool
	TS   bool
	TC   uint8 // 2 bits
}

func decodeCapabilityCode(br *bitReader) (CapabilityCode, error) {
	if _, err := br.readBits(2); err != nil { // reserved
		return CapabilityCode{}, err
	}
	acas, err := br.readBool()
	if err != nil {
		return CapabilityCode{}, err
	}
	cdti, err := br.readBool()
	if err != nil {
		return CapabilityCode{}, err
	}
	if _, err := br.readBits(2); err != nil { // reserved
		return CapabilityCode{}, err
	}
	arv, err := br.readBool()
	if err != nil {
		return CapabilityCode{}, err
	}
	ts, err := br.readBool()
	if err != nil {
		return CapabilityCode{}, err
	}
	tc, err := br.readBits(2)
	if err != nil {
		return CapabilityCode{}, err
	}
	if _, err := br.readBits(6); err != nil { // reserved
		return CapabilityCode{}, err
	}

	return CapabilityCode{ACAS: acas, CDTI: cdti, ARV: arv, TS: ts, TC: uint8(tc)}, nil
}

// OperationStatusAirborne is the TC=31/subtype=0 variant.
type OperationStatusAirborne struct {
	Capability     CapabilityCode
	SAF            bool
	SDA            uint8 // 2 bits
	Version        ADSBVersion
	NICSupplementA bool
	NACp           uint8 // 4 bits
	GVA            uint8 // 2 bits
	SIL            uint8 // 2 bits
	BaroIntegrity  bool
	HeadingRef     bool
	SILSupplement  bool
}

// OperationStatusSurface is the TC=31/subtype=1 variant.
type OperationStatusSurface struct {
	Capability           CapabilityCode
	CapacityLengthCode   uint8  // 4 bits
	OperationalModeCodes uint16 // 13 bits
	Version              ADSBVersion
	NICSupplementA       bool
	NACp                 uint8 // 4 bits
	SIL                  uint8 // 2 bits
	TrackAngleOrHeading  bool
	HeadingRef           bool
	SILSupplement        bool
}

// AircraftOperationStatus is ME TC 31. Exactly one of Airborne or
// Surface is populated depending on the 3-bit subtype: 0 selects
// Airborne, 1 selects Surface; any other value fails
// UnsupportedOperationStatusSubtype.
type AircraftOperationStatus struct {
	Subtype  uint8
	Airborne *OperationStatusAirborne
	Surface  *OperationStatusSurface
}

func (AircraftOperationStatus) isMEBody() {}

func decodeOperationStatus(br *bitReader) (MEBody, error) {
	subtype, err := br.readBits(3)
	if err != nil {
		return nil, err
	}

	cap, err := decodeCapabilityCode(br)
	if err != nil {
		return nil, err
	}

	switch subtype {
	case 0:
		if _, err := br.readBits(5); err != nil { // operational_mode_unused1
			return nil, err
		}
		saf, err := br.readBool()
		if err != nil {
			return nil, err
		}
		sda, err := br.readBits(2)
		if err != nil {
			return nil, err
		}
		if _, err := br.readBits(8); err != nil { // operational_mode_unused2
			return nil, err
		}
		version, err := br.readBits(3)
		if err != nil {
			return nil, err
		}
		nicSupA, err := br.readBool()
		if err != nil {
			return nil, err
		}
		nacp, err := br.readBits(4)
		if err != nil {
			return nil, err
		}
		gva, err := br.readBits(2)
		if err != nil {
			return nil, err
		}
		sil, err := br.readBits(2)
		if err != nil {
			return nil, err
		}
		baroIntegrity, err := br.readBool()
		if err != nil {
			return nil, err
		}
		headingRef, err := br.readBool()
		if err != nil {
			return nil, err
		}
		silSupplement, err := br.readBool()
		if err != nil {
			return nil, err
		}
		if _, err := br.readBits(1); err != nil { // reserved
			return nil, err
		}

		return AircraftOperationStatus{
			Subtype: uint8(subtype),
			Airborne: &OperationStatusAirborne{
				Capability:     cap,
				SAF:            saf,
				SDA:            uint8(sda),
				Version:        ADSBVersion(version),
				NICSupplementA: nicSupA,
				NACp:           uint8(nacp),
				GVA:            uint8(gva),
				SIL:            uint8(sil),
				BaroIntegrity:  baroIntegrity,
				HeadingRef:     headingRef,
				SILSupplement:  silSupplement,
			},
		}, nil

	case 1:
		capacityLen, err := br.readBits(4)
		if err != nil {
			return nil, err
		}
		modeCodes, err := br.readBits(13)
		if err != nil {
			return nil, err
		}
		version, err := br.readBits(3)
		if err != nil {
			return nil, err
		}
		nicSupA, err := br.readBool()
		if err != nil {
			return nil, err
		}
		nacp, err := br.readBits(4)
		if err != nil {
			return nil, err
		}
		if _, err := br.readBits(1); err != nil { // reserved
			return nil, err
		}
		sil, err := br.readBits(2)
		if err != nil {
			return nil, err
		}
		trackAngle, err := br.readBool()
		if err != nil {
			return nil, err
		}
		headingRef, err := br.readBool()
		if err != nil {
			return nil, err
		}
		silSupplement, err := br.readBool()
		if err != nil {
			return nil, err
		}
		if _, err := br.readBits(1); err != nil { // reserved
			return nil, err
		}

		return AircraftOperationStatus{
			Subtype: uint8(subtype),
			Surface: &OperationStatusSurface{
				Capability:           cap,
				CapacityLengthCode:   uint8(capacityLen),
				OperationalModeCodes: uint16(modeCodes),
				Version:              ADSBVersion(version),
				NICSupplementA:       nicSupA,
				NACp:                 uint8(nacp),
				SIL:                  uint8(sil),
				TrackAngleOrHeading:  trackAngle,
				HeadingRef:           headingRef,
				SILSupplement:        silSupplement,
			},
		}, nil

	default:
		return nil, newErr(UnsupportedOperationStatusSubtype, "")
	}
}
