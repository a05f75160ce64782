package modes

// Decode parses a 112-bit Mode-S extended squitter frame. Input must be
// exactly 14 bytes: shorter buffers fail NotEnoughBits, longer ones fail
// TrailingBytes. Only DF=17 (ADS-B) and DF=18 (TIS-B/ADS-R) are in
// scope; any other Downlink Format fails UnsupportedDF.
//
// Decode never panics. Every malformed or unsupported frame produces a
// *DecodeError describing why; the caller is expected to drop it and
// move on.
func Decode(data []byte) (*Frame, error) {
	if len(data) < 14 {
		return nil, newErr(NotEnoughBits, "frame requires 14 bytes")
	}
	if len(data) > 14 {
		return nil, newErr(TrailingBytes, "frame is exactly 14 bytes")
	}

	br := newBitReader(data)

	df, err := br.readBits(5)
	if err != nil {
		return nil, err
	}

	frame := &Frame{DF: uint8(df)}

	switch df {
	case 17:
		cap, err := br.readBits(3)
		if err != nil {
			return nil, err
		}
		frame.Capability = Capability(cap)
	case 18:
		cf, err := br.readBits(3)
		if err != nil {
			return nil, err
		}
		frame.ControlField = ControlField(cf)
		switch frame.ControlField {
		case ControlADSBESNT, ControlADSBESNTAlt, ControlTISBADSBRelay:
			// these three carry an ADS-B-shaped body; fall through below
		default:
			return nil, newErr(UnsupportedControlField, frame.ControlField.String())
		}
	default:
		return nil, newErr(UnsupportedDF, "")
	}

	icaoRaw, err := br.readBits(24)
	if err != nil {
		return nil, err
	}
	frame.ICAO = ICAO(icaoRaw)

	me, err := decodeME(br)
	if err != nil {
		return nil, err
	}
	frame.ME = me

	pi, err := br.readBits(24)
	if err != nil {
		return nil, err
	}
	frame.PI = uint32(pi)

	if br.remaining() != 0 {
		return nil, newErr(TrailingBytes, "")
	}

	return frame, nil
}

func (c ControlField) String() string {
	switch c {
	case ControlADSBESNT:
		return "ADS-B from a non-transponder device (ICAO address)"
	case ControlADSBESNTAlt:
		return "ADS-B from a non-transponder device (non-ICAO address)"
	case ControlTISBFine:
		return "TIS-B fine"
	case ControlTISBCoarse:
		return "TIS-B coarse"
	case ControlTISBManage:
		return "TIS-B management"
	case ControlTISBRelay:
		return "TIS-B relay"
	case ControlTISBADSBRelay:
		return "rebroadcast ADS-B (DF17 shape)"
	case ControlReserved:
		return "reserved"
	default:
		return "unknown control field"
	}
}
