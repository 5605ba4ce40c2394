package wire

// EncodeSigned converts a (possibly negative) value into its unsigned
// width-byte little-endian two's complement representation, per spec
// §4.7: wire = (2^(8L) + v) mod 2^(8L).
func EncodeSigned(v int64, widthBytes int) uint32 {
	width := uint(widthBytes * 8)
	mod := uint64(1) << width
	u := uint64(v) & (mod - 1)
	return uint32(u)
}

// DecodeSigned reinterprets an unsigned width-byte register value as
// signed two's complement, per spec §4.7: if the top bit of width*8 is
// set, subtract 2^(8L).
func DecodeSigned(u uint32, widthBytes int) int64 {
	width := uint(widthBytes * 8)
	signBit := uint32(1) << (width - 1)
	if u&signBit != 0 {
		return int64(u) - int64(uint64(1)<<width)
	}
	return int64(u)
}
