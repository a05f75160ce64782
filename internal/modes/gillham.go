package modes

// decodeGillham converts the 11 ordered Gillham data bits left once the
// Q-bit has been stripped from a 12-bit barometric altitude field into a
// feet value. The 11 bits, MSB first, are
// [C1 A1 C2 A2 C4 A4 M B1 B2 D2 B4]. M is the always-zero meter flag
// that ADS-B barometric altitude never sets; it rides along in the high
// septet purely because of how the wire field is split at the Q-bit.
//
// This is the closed-form permutation dump1090-family decoders use: fold
// the C-digit Gray code into a 100-ft count, then the A/B/D-digit Gray
// code into a 500-ft count, with the classic "refine 7→5" and parity
// corrections that make the two counters agree. The table is built once
// at init since it only depends on an 11-bit input.
func decodeGillham(n11 uint16) (feet int, ok bool) {
	c1 := n11&(1<<10) != 0
	a1 := n11&(1<<9) != 0
	c2 := n11&(1<<8) != 0
	a2 := n11&(1<<7) != 0
	c4 := n11&(1<<6) != 0
	a4 := n11&(1<<5) != 0
	// bit (1<<4) is M: always zero for ADS-B, not consulted.
	b1 := n11&(1<<3) != 0
	b2 := n11&(1<<2) != 0
	d2 := n11&(1<<1) != 0
	b4 := n11&(1<<0) != 0

	hundreds := 0
	if c1 {
		hundreds ^= 7
	}
	if c2 {
		hundreds ^= 3
	}
	if c4 {
		hundreds ^= 1
	}
	if hundreds&5 == 5 {
		hundreds ^= 2
	}
	if hundreds > 5 {
		return 0, false
	}

	fiveHundreds := 0
	if d2 {
		fiveHundreds ^= 0x7F
	}
	if a1 {
		fiveHundreds ^= 0x3F
	}
	if a2 {
		fiveHundreds ^= 0x1F
	}
	if a4 {
		fiveHundreds ^= 0x0F
	}
	if b1 {
		fiveHundreds ^= 0x07
	}
	if b2 {
		fiveHundreds ^= 0x03
	}
	if b4 {
		fiveHundreds ^= 0x01
	}
	if fiveHundreds&1 != 0 {
		hundreds = 6 - hundreds
	}

	return (fiveHundreds*5+hundreds)*100 - 1200, true
}

// gillhamTable is a precomputed 2048-entry lookup from the raw 11-bit
// field to decoded feet, built at init from decodeGillham so hot-path
// decoding is a single array index.
var gillhamTable [2048]int32
var gillhamValid [2048]bool

func init() {
	for i := 0; i < 2048; i++ {
		feet, ok := decodeGillham(uint16(i))
		gillhamValid[i] = ok
		if ok {
			gillhamTable[i] = int32(feet)
		}
	}
}

func gillhamAltitude(n11 uint16) (int, bool) {
	if int(n11) >= len(gillhamTable) {
		return 0, false
	}
	if !gillhamValid[n11] {
		return 0, false
	}
	return int(gillhamTable[n11]), true
}
