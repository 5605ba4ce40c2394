package v2

// Instruction codes, spec §4.3.
const (
	InstrPing               byte = 0x01
	InstrRead               byte = 0x02
	InstrWrite              byte = 0x03
	InstrRegWrite           byte = 0x04
	InstrAction             byte = 0x05
	InstrFactoryReset       byte = 0x06
	InstrReboot             byte = 0x08
	InstrClear              byte = 0x10
	InstrControlTableBackup byte = 0x20
	InstrStatus             byte = 0x55
	InstrSyncRead           byte = 0x82
	InstrSyncWrite          byte = 0x83
	InstrFastSyncRead       byte = 0x8A
	InstrBulkRead           byte = 0x92
	InstrBulkWrite          byte = 0x93
	InstrFastBulkRead       byte = 0x9A
)

// Broadcast is the ID that addresses every device on the bus.
const Broadcast byte = 254

var header = [3]byte{0xFF, 0xFF, 0xFD}

// reservedByte is the fixed 0x00 reserved byte following the header.
const reservedByte byte = 0x00

// buildPacket assembles a complete instruction packet: header,
// reserved byte, id, little-endian length, instr+params (post-
// stuffing), and a little-endian CRC-16 trailer. instrAndParams is the
// unstuffed instr+params region; stuffing and length/CRC accounting
// happen here, mirroring Protocol2.send's stuff -> header -> length ->
// checksum pipeline.
func buildPacket(id byte, instrAndParams []byte) []byte {
	stuffed := Stuff(instrAndParams)

	length := len(stuffed) + 2 // + crc
	packet := make([]byte, 0, 7+len(stuffed)+2)
	packet = append(packet, header[0], header[1], header[2], reservedByte, id)
	packet = append(packet, byte(length), byte(length>>8))
	packet = append(packet, stuffed...)

	crc := CRC16(packet)
	packet = append(packet, byte(crc), byte(crc>>8))
	return packet
}

func le16(v int) []byte { return []byte{byte(v), byte(v >> 8)} }

func leN(v int64, widthBytes int) []byte {
	out := make([]byte, widthBytes)
	for i := 0; i < widthBytes; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}
