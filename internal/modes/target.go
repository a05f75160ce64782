package modes

// TargetStateAndStatusInformation is ME TC 29: the selected
// altitude/heading/QNH the autopilot is flying to, plus autopilot mode
// flags.
type TargetStateAndStatusInformation struct {
	Subtype      uint8
	IsFMS        bool
	AltitudeRaw  uint16 // 12 bits
	QNHRaw       uint16 // 9 bits
	IsHeading    bool
	HeadingRaw   uint16 // 9 bits
	NACp         uint8  // 4 bits
	NICBaro      bool
	SIL          uint8 // 2 bits
	ModeValidity bool
	Autopilot    bool
	VNAV         bool
	AltHold      bool
	IMF          bool
	Approach     bool
	TCAS         bool
	LNAV         bool
}

func (TargetStateAndStatusInformation) isMEBody() {}

func decodeTargetState(br *bitReader) (MEBody, error) {
	subtype, err := br.readBits(2)
	if err != nil {
		return nil, err
	}
	isFMS, err := br.readBool()
	if err != nil {
		return nil, err
	}
	altRaw, err := br.readBits(12)
	if err != nil {
		return nil, err
	}
	qnhRaw, err := br.readBits(9)
	if err != nil {
		return nil, err
	}
	isHeading, err := br.readBool()
	if err != nil {
		return nil, err
	}
	headingRaw, err := br.readBits(9)
	if err != nil {
		return nil, err
	}
	nacp, err := br.readBits(4)
	if err != nil {
		return nil, err
	}
	nicbaro, err := br.readBool()
	if err != nil {
		return nil, err
	}
	sil, err := br.readBits(2)
	if err != nil {
		return nil, err
	}
	modeValidity, err := br.readBool()
	if err != nil {
		return nil, err
	}
	autopilot, err := br.readBool()
	if err != nil {
		return nil, err
	}
	vnav, err := br.readBool()
	if err != nil {
		return nil, err
	}
	altHold, err := br.readBool()
	if err != nil {
		return nil, err
	}
	imf, err := br.readBool()
	if err != nil {
		return nil, err
	}
	approach, err := br.readBool()
	if err != nil {
		return nil, err
	}
	tcas, err := br.readBool()
	if err != nil {
		return nil, err
	}
	lnav, err := br.readBool()
	if err != nil {
		return nil, err
	}
	if _, err := br.readBits(2); err != nil { // reserved
		return nil, err
	}

	return TargetStateAndStatusInformation{
		Subtype:      uint8(subtype),
		IsFMS:        isFMS,
		AltitudeRaw:  uint16(altRaw),
		QNHRaw:       uint16(qnhRaw),
		IsHeading:    isHeading,
		HeadingRaw:   uint16(headingRaw),
		NACp:         uint8(nacp),
		NICBaro:      nicbaro,
		SIL:          uint8(sil),
		ModeValidity: modeValidity,
		Autopilot:    autopilot,
		VNAV:         vnav,
		AltHold:      altHold,
		IMF:          imf,
		Approach:     approach,
		TCAS:         tcas,
		LNAV:         lnav,
	}, nil
}

// Altitude returns the target altitude in feet: (raw-1)*32 for raw>=2,
// 0 for raw in {0,1} ("no data"/"zero" sentinel).
func (t TargetStateAndStatusInformation) Altitude() int {
	if t.AltitudeRaw < 2 {
		return 0
	}
	return (int(t.AltitudeRaw) - 1) * 32
}

// QNH returns the altimeter setting in millibars: 0 for raw=0, else
// 800 + (raw-1)*0.8.
func (t TargetStateAndStatusInformation) QNH() float64 {
	if t.QNHRaw == 0 {
		return 0
	}
	return 800 + float64(t.QNHRaw-1)*0.8
}

// Heading returns the selected heading in degrees: raw * 180/256.
func (t TargetStateAndStatusInformation) Heading() float64 {
	return float64(t.HeadingRaw) * 180 / 256
}
