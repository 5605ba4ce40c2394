// Package wire holds the bits shared by both protocol codecs: the
// universal response/error model and the width-aware signed encoding
// used by control-table registers.
package wire

import "fmt"

// ErrorKind tags a single transport- or device-reported failure. The
// zero value is not a valid ErrorKind; use OK for the success tag.
type ErrorKind string

// OK is the success tag. A Response is ok when every tag in its error
// list equals OK.
const OK ErrorKind = "OK"

// Transport-layer tags, returned by the receive path itself rather than
// decoded from a device status packet.
const (
	ErrRXError                 ErrorKind = "RX_ERROR"
	ErrRXCRCMismatch           ErrorKind = "RX_CRC_MISMATCH"
	ErrRXFailedToRxEntirePacket ErrorKind = "RX_FAILED_TO_RX_ENTIRE_PACKET"
	ErrRXNoResponse            ErrorKind = "RX_NO_RESPONSE"
	ErrRXTimeout               ErrorKind = "RX_TIMEOUT"
)

// Protocol v1 device-reported status bits, STATUS_ERRORS_V1 in spec §4.2.
const (
	ErrInstruction  ErrorKind = "INSTR_ERROR"
	ErrOverload     ErrorKind = "OVERLOAD"
	ErrCRC          ErrorKind = "CRC"
	ErrRange        ErrorKind = "RANGE"
	ErrOverheating  ErrorKind = "OVERHEATING"
	ErrAngle        ErrorKind = "ANGLE"
	ErrInputVoltage ErrorKind = "INPUT_VOLTAGE"
)

// Protocol v2 device-reported status bits, STATUS_ERRORS_V2 in spec §4.3.
const (
	ErrResultFail ErrorKind = "RESULT_FAIL"
	ErrDataRange  ErrorKind = "DATA_RANGE"
	ErrDataLength ErrorKind = "DATA_LENGTH"
	ErrDataLimit  ErrorKind = "DATA_LIMIT"
	ErrAccess     ErrorKind = "ACCESS"
)

// PreconditionError is a local, non-recoverable failure detected before
// any bytes would be put on the bus. The controltable unit conversions
// return it for a baud rate missing from a servo's baud table, an RPM
// conversion with no RPM step configured, or an unknown unit. A value
// outside a register's limits is not reported through this type:
// servo.Set returns a DATA_RANGE response for it. Neither case causes
// bus traffic.
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string {
	return e.msg
}

// Precondition builds a PreconditionError with the given message.
func Precondition(format string, args ...any) error {
	return &PreconditionError{msg: fmt.Sprintf(format, args...)}
}
