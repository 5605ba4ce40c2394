// Package v1 implements the legacy Dynamixel Protocol 1.0 wire codec:
// packet framing, inverted-sum checksum validation, and the
// instruction set used by first-generation servos (AX, RX, MX series).
package v1

// Instruction codes, spec §4.2.
const (
	InstrPing         byte = 0x01
	InstrRead         byte = 0x02
	InstrWrite        byte = 0x03
	InstrRegWrite     byte = 0x04
	InstrAction       byte = 0x05
	InstrFactoryReset byte = 0x06
	InstrReboot       byte = 0x08
	InstrSyncWrite    byte = 0x83
	InstrBulkRead     byte = 0x92
)

// Broadcast is the ID that addresses every device on the bus.
const Broadcast byte = 254

var header = [2]byte{0xFF, 0xFF}

// Checksum computes the spec §4.2 inverted-sum checksum over data
// (id through the last param, i.e. everything but the two header
// bytes and the checksum field itself).
func Checksum(data []byte) byte {
	var sum int
	for _, b := range data {
		sum += int(b)
	}
	return byte(^sum)
}

// buildPacket assembles a complete instruction packet: header, id,
// len (instr+params+checksum count), instr+params, checksum.
func buildPacket(id byte, instrAndParams []byte) []byte {
	length := len(instrAndParams) + 1 // + checksum
	packet := make([]byte, 0, 2+2+len(instrAndParams)+1)
	packet = append(packet, header[0], header[1], id, byte(length))
	packet = append(packet, instrAndParams...)
	chk := Checksum(packet[2:])
	packet = append(packet, chk)
	return packet
}

func leN(v int64, widthBytes int) []byte {
	out := make([]byte, widthBytes)
	for i := 0; i < widthBytes; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}
