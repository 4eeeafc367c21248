package hamster

import "fmt"

// PacketLength is the fixed size of every motoring and sensory packet,
// including the terminating delimiter (spec §4.4/§6).
const PacketLength = 54

// Delim is the byte that terminates every line-framed packet.
const Delim = '\r'

// hex2 renders v as exactly 2 uppercase hex digits, taking only the
// low byte (matches the C source's direct byte truncation).
func hex2(v int) string {
	return fmt.Sprintf("%02X", byte(v))
}

// hex6 renders v as exactly 6 uppercase hex digits (3 bytes), taking
// only the low 24 bits.
func hex6(v int) string {
	return fmt.Sprintf("%06X", v&0xFFFFFF)
}

// encodeMotoringPacket packs snap plus the connector's 12-hex-digit
// address into the documented 54-byte ASCII layout (spec §4.4).
func encodeMotoringPacket(snap motoringSnapshot, address string) []byte {
	lineByte := (snap.lineMode&0xF)<<3 | ((snap.lineSpeed-1)&0x7)
	if snap.lineFlag {
		lineByte |= lineTracerFlagBit
	}

	addr := address
	if len(addr) < 12 {
		addr = addr + repeat("0", 12-len(addr))
	} else if len(addr) > 12 {
		addr = addr[:12]
	}

	buzzerRaw := int(snap.buzzer * 100)

	s := fmt.Sprintf("%X", snap.topology&0xF) +
		"0010" +
		hex2(snap.leftWheel) +
		hex2(snap.rightWheel) +
		hex2(snap.leftLed) +
		hex2(snap.rightLed) +
		hex6(buzzerRaw) +
		hex2(snap.note) +
		hex2(lineByte) +
		hex2(snap.proximity) +
		hex2((snap.gravity&0xF)<<4|(snap.bandWidth&0xF)) +
		hex2((snap.ioModeA&0xF)<<4|(snap.ioModeB&0xF)) +
		hex2(snap.outputA) +
		hex2(snap.outputB) +
		"000000" +
		"-" +
		addr +
		"0" + // byte 52 carries no field
		"\r"

	return []byte(s)
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// hexNibble parses one ASCII hex digit; returns -1 on a non-hex byte.
func hexNibble(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return -1
	}
}

// hexByte parses exactly 2 hex digits starting at offset into a 0..255
// int; returns 0 if the bytes are not valid hex (spec §7: invalid input
// never crashes).
func hexByte(packet []byte, offset int) int {
	if offset+2 > len(packet) {
		return 0
	}
	hi := hexNibble(packet[offset])
	lo := hexNibble(packet[offset+1])
	if hi < 0 || lo < 0 {
		return 0
	}
	return hi<<4 | lo
}

// hexWord parses exactly 4 hex digits starting at offset into a 0..65535 int.
func hexWord(packet []byte, offset int) int {
	if offset+4 > len(packet) {
		return 0
	}
	return hexByte(packet, offset)<<8 | hexByte(packet, offset+2)
}

// sensoryReading is the fully decoded content of one inbound sensory
// packet (spec §4.4).
type sensoryReading struct {
	signalStrength int
	leftProximity  int
	rightProximity int
	leftFloor      int
	rightFloor     int
	accelX         int
	accelY         int
	accelZ         int
	hasLight       bool
	light          int
	hasTemperature bool
	temperature    int
	inputA         int
	inputB         int
	lineTracerByte int
}

// decodeSensoryPacket decodes a validated 54-byte inbound packet at the
// fixed offsets documented in spec §4.4. Callers must check length
// first; a short/garbled packet is never partially consumed (framing
// by delimiter guarantees this upstream).
func decodeSensoryPacket(packet []byte) sensoryReading {
	var r sensoryReading

	r.signalStrength = hexByte(packet, 6) - 0x100
	r.leftProximity = hexByte(packet, 8)
	r.rightProximity = hexByte(packet, 10)
	r.leftFloor = hexByte(packet, 12)
	r.rightFloor = hexByte(packet, 14)

	r.accelX = signExtend16(hexWord(packet, 16))
	r.accelY = signExtend16(hexWord(packet, 20))
	r.accelZ = signExtend16(hexWord(packet, 24))

	discriminator := hexByte(packet, 28)
	if discriminator == 0 {
		r.hasLight = true
		r.light = hexWord(packet, 30)
	} else {
		r.hasTemperature = true
		t := hexByte(packet, 30)
		if t > 0x7F {
			t -= 0x100
		}
		r.temperature = t/2 + 24
	}

	r.inputA = hexByte(packet, 34)
	r.inputB = hexByte(packet, 36)
	r.lineTracerByte = hexByte(packet, 38)

	return r
}

// signExtend16 treats v as a 16-bit two's-complement quantity.
func signExtend16(v int) int {
	if v > 0x7FFF {
		return v - 0x10000
	}
	return v
}
