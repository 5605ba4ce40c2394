package transport

import (
	"time"

	"github.com/tarm/serial"
)

// SerialPort wraps a github.com/tarm/serial port as a transport.Port. It
// is the default, portable backend: Linux, macOS and Windows all expose
// their USB-UART adapters through it, at the cost of only supporting
// the bauds tarm/serial enumerates (see OpenSerialPort).
type SerialPort struct {
	port *serial.Port
}

// OpenSerialPort opens dev at baud with a read timeout of timeout. A
// timed-out Read returns (nil, nil) rather than an error, per the Port
// contract.
func OpenSerialPort(dev string, baud int, timeout time.Duration) (*SerialPort, error) {
	cfg := &serial.Config{
		Name:        dev,
		Baud:        baud,
		ReadTimeout: timeout,
	}
	p, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, err
	}
	return &SerialPort{port: p}, nil
}

func (s *SerialPort) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialPort) Read(n int) ([]byte, error) {
	size := n
	if size <= 0 {
		size = 256
	}
	buf := make([]byte, size)
	read, err := s.port.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:read], nil
}

// Available is unsupported by tarm/serial's API; it always reports 0,
// which is safe because the protocol codecs' drain then calls Read(0),
// a Read that waits up to the port timeout for whatever arrives.
func (s *SerialPort) Available() (int, error) {
	return 0, nil
}

func (s *SerialPort) ResetInput() error {
	return s.port.Flush()
}

func (s *SerialPort) Close() error {
	return s.port.Close()
}
