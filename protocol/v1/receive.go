package v1

import (
	"github.com/dbd/go-dynamixel/transport"
	"github.com/dbd/go-dynamixel/wire"
)

// headerLen is the fixed prefix before the variable-length params: 0xFF
// 0xFF id len = 4 bytes.
const headerLen = 4

// minStatusPacket is the smallest legal status packet: header(4) + err
// + checksum = 6 bytes.
const minStatusPacket = 6

func drain(port transport.Port) ([]byte, error) {
	n, err := port.Available()
	if err != nil {
		return nil, err
	}
	return port.Read(n)
}

func findHeader(buf []byte) int {
	for i := 0; i+2 <= len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1] == 0xFF {
			return i
		}
	}
	return -1
}

func packetLen(buf []byte) int {
	return headerLen + int(buf[3])
}

func validate(buf []byte) []wire.ErrorKind {
	if len(buf) < headerLen+2 {
		return []wire.ErrorKind{wire.ErrRXError}
	}
	want := Checksum(buf[2 : len(buf)-1])
	got := buf[len(buf)-1]
	if want != got {
		return []wire.ErrorKind{wire.ErrRXCRCMismatch}
	}
	errByte := buf[4]
	if errByte == 0 {
		return []wire.ErrorKind{wire.OK}
	}
	var tags []wire.ErrorKind
	table := []wire.ErrorKind{
		wire.ErrInstruction, wire.ErrOverload, wire.ErrCRC,
		wire.ErrRange, wire.ErrOverheating, wire.ErrAngle, wire.ErrInputVoltage,
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
// the v1 header/length/checksum shape (2-byte header, 1-byte length,
// 1-byte checksum; analogous to the v2 procedure in protocol/v2).
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

	default:
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

// splitSubPackets implements spec §4.4 step 3b for the v1 shape: scans
// for every subsequent 2-byte 0xFF 0xFF header, splits there, and
// validates each sub-packet independently.
func splitSubPackets(buf []byte) wire.Response {
	var offsets []int
	for i := 0; i+2 <= len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1] == 0xFF {
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
