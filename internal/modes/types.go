package modes

import "fmt"

// ICAO is a 24-bit aircraft address. Equality is defined on the
// underlying value; the zero value is not a sentinel for "unknown":
// callers that need that distinction carry it out-of-band.
type ICAO uint32

// String renders the address as six uppercase hex digits.
func (a ICAO) String() string {
	return fmt.Sprintf("%06X", uint32(a))
}

// Capability is the 3-bit CA subfield of the first Mode-S octet.
type Capability uint8

// ControlField is the 3-bit DF=18 discriminator that precedes the ADS-B
// body, per Doc 9871 C.3.3. Only two of its eight wire values carry a
// payload this decoder understands.
type ControlField uint8

const (
	ControlADSBESNT      ControlField = 0 // ADS-B message from a non-transponder device, ICAO address
	ControlADSBESNTAlt   ControlField = 1 // as above, with an alternate (non-ICAO) address
	ControlTISBFine      ControlField = 2
	ControlTISBCoarse    ControlField = 3
	ControlTISBManage    ControlField = 4
	ControlTISBRelay     ControlField = 5
	ControlTISBADSBRelay ControlField = 6 // relayed DF17 ADS-B, same body shape as a DF=17 frame
	ControlReserved      ControlField = 7
)

// Unit distinguishes feet from meters for a GNSS-height altitude field.
type Unit uint8

const (
	UnitFeet  Unit = 1
	UnitMeter Unit = 0
)

// ADSBVersion is the operational-status version number, selecting which
// appendix of Doc 9871 governs the remaining OperationStatus bit layout.
type ADSBVersion uint8

const (
	DOC9871AppendixA ADSBVersion = 0
	DOC9871AppendixB ADSBVersion = 1
	DOC9871AppendixC ADSBVersion = 2
)

func (v ADSBVersion) String() string {
	switch v {
	case DOC9871AppendixA:
		return "Version 0, Appendix A"
	case DOC9871AppendixB:
		return "Version 1, Appendix B"
	case DOC9871AppendixC:
		return "Version 2, Appendix C"
	default:
		return "unknown version"
	}
}

// CPRFormat is the single even/odd bit carried by every CPR-encoded
// position report.
type CPRFormat uint8

const (
	CPREven CPRFormat = 0
	CPROdd  CPRFormat = 1
)

func (f CPRFormat) String() string {
	if f == CPROdd {
		return "Odd"
	}
	return "Even"
}

// MEBody is implemented by every Message-Extended variant. It has no
// methods beyond a marker and a display hook so that switching on
// concrete type (rather than virtual dispatch) stays the idiom.
type MEBody interface {
	isMEBody()
	String() string
}

// Frame is one fully decoded 112-bit Mode-S extended squitter.
type Frame struct {
	DF           uint8
	Capability   Capability
	ControlField ControlField // only meaningful when DF == 18
	ICAO         ICAO
	ME           MEBody
	PI           uint32 // 24-bit parity/interrogator field, stored unverified
}
