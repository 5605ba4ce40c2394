package v2

import (
	"github.com/dbd/go-dynamixel/transport"
	"github.com/dbd/go-dynamixel/wire"
)

// headerLen is the fixed prefix before the length field: 0xFF 0xFF 0xFD
// reserved id length_lo length_hi = 7 bytes, matching spec §4.4's
// "len + 7 == buffer.size()" accounting.
const headerLen = 7

// minStatusPacket is the smallest possible legal status packet: header(7)
// + instr(1) + err(1) + crc(2) = 11 bytes. Used only before the length
// field itself has been read, to size the read that gets us there.
const minStatusPacket = 11

// drain reads whatever the UART currently has buffered, without
// blocking beyond the port's own read timeout.
func drain(port transport.Port) ([]byte, error) {
	n, err := port.Available()
	if err != nil {
		return nil, err
	}
	return port.Read(n)
}

// findHeader returns the offset of the first 3-byte 0xFF 0xFF 0xFD
// header in buf, or -1.
func findHeader(buf []byte) int {
	for i := 0; i+3 <= len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1] == 0xFF && buf[i+2] == 0xFD {
			return i
		}
	}
	return -1
}

// packetLen reads the little-endian length field at buf[5:7] (instr +
// params + crc), returning the total on-wire packet size headerLen+len.
func packetLen(buf []byte) int {
	l := int(buf[5]) | int(buf[6])<<8
	return headerLen + l
}

// validate recomputes the CRC over buf[:-2] and compares it against the
// trailing little-endian CRC; on a match, decodes the status err byte
// into its tag list.
func validate(buf []byte) []wire.ErrorKind {
	if len(buf) < headerLen+3 {
		return []wire.ErrorKind{wire.ErrRXError}
	}
	want := CRC16(buf[:len(buf)-2])
	got := uint16(buf[len(buf)-2]) | uint16(buf[len(buf)-1])<<8
	if want != got {
		return []wire.ErrorKind{wire.ErrRXCRCMismatch}
	}
	errByte := buf[8]
	if errByte == 0 {
		return []wire.ErrorKind{wire.OK}
	}
	var tags []wire.ErrorKind
	table := []wire.ErrorKind{
		wire.ErrResultFail, wire.ErrInstruction, wire.ErrCRC,
		wire.ErrDataRange, wire.ErrDataLength, wire.ErrDataLimit, wire.ErrAccess,
	}
	for i, tag := range table {
		if errByte&(1<<uint(i)) != 0 {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = []wire.ErrorKind{wire.ErrRXError}
	}
	return tags
}

// Receive implements spec §4.4's receive-path decision procedure for
// the v2 header/length/CRC shape.
func Receive(port transport.Port) wire.Response {
	buf, err := drain(port)
	if err != nil {
		return wire.ErrResponse(wire.ErrRXError)
	}
	return receiveFrom(port, buf)
}

func receiveFrom(port transport.Port, buf []byte) wire.Response {
	if len(buf) == 0 {
		return wire.ErrResponse(wire.ErrRXTimeout)
	}

	idx := findHeader(buf)
	if idx < 0 {
		return wire.ErrResponse(wire.ErrRXNoResponse)
	}
	if idx > 0 {
		return receiveFrom(port, buf[idx:])
	}

	if len(buf) < headerLen {
		// Not enough to know the declared length yet; ask for the rest
		// of a minimal packet.
		more, err := port.Read(minStatusPacket - len(buf))
		if err != nil || len(more) == 0 {
			return wire.ErrResponse(wire.ErrRXFailedToRxEntirePacket)
		}
		return receiveFrom(port, append(buf, more...))
	}

	total := packetLen(buf)

	switch {
	case total == len(buf):
		return wire.BytesResponse(buf).WithErrs(validate(buf))

	case total < len(buf):
		return splitSubPackets(buf)

	default: // total > len(buf): short read, fetch the remainder. total
		// is already the parsed on-wire size (header + declared length),
		// so the shortfall is simply total - len(buf) regardless of how
		// much of the packet the initial drain happened to capture.
		missing := total - len(buf)
		more, err := port.Read(missing)
		if err != nil || len(more) == 0 {
			return wire.ErrResponse(wire.ErrRXFailedToRxEntirePacket)
		}
		buf = append(buf, more...)
		if extra, _ := port.Available(); extra > 0 {
			rest, _ := port.Read(extra)
			buf = append(buf, rest...)
		}
		if len(buf) < total {
			return wire.ErrResponse(wire.ErrRXFailedToRxEntirePacket)
		}
		return receiveFrom(port, buf)
	}
}

// splitSubPackets implements spec §4.4 step 3b: the buffer holds more
// than one packet. It scans for every subsequent valid 4-byte header
// window (0xFF 0xFF 0xFD X, X != 0xFD), splits there, and validates
// each resulting sub-packet independently.
func splitSubPackets(buf []byte) wire.Response {
	var offsets []int
	for i := 0; i+4 <= len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1] == 0xFF && buf[i+2] == 0xFD && buf[i+3] != 0xFD {
			offsets = append(offsets, i)
		}
	}
	if len(offsets) == 0 || offsets[0] != 0 {
		offsets = append([]int{0}, offsets...)
	}

	var subs []wire.Response
	var errs []wire.ErrorKind
	for i, off := range offsets {
		end := len(buf)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		piece := buf[off:end]
		v := validate(piece)
		subs = append(subs, wire.BytesResponse(piece))
		errs = append(errs, firstOrError(v))
	}
	return wire.SubsResponse(subs, errs)
}

func firstOrError(errs []wire.ErrorKind) wire.ErrorKind {
	if len(errs) == 0 {
		return wire.ErrRXError
	}
	return errs[0]
}
