//go:build linux

package transport

import (
	"time"

	goserial "github.com/daedaluz/goserial"
)

// LinuxSerialPort backs a Port with github.com/daedaluz/goserial, which
// talks ioctl(TCSETS2) directly. Dynamixel's 1,000,000 baud default
// (and the other non-POSIX-standard bauds some models support) isn't
// one of the fixed Bxxx constants tarm/serial is limited to; goserial's
// Termios2.SetCustomSpeed sets the BOTHER flag and an exact divisor, so
// this backend is preferred whenever the target is Linux.
type LinuxSerialPort struct {
	port *goserial.Port
}

// OpenLinuxSerialPort opens dev at an exact baud rate via termios2.
func OpenLinuxSerialPort(dev string, baud int, timeout time.Duration) (*LinuxSerialPort, error) {
	opts := goserial.NewOptions()
	opts.SetReadTimeout(timeout)
	port, err := goserial.Open(dev, opts)
	if err != nil {
		return nil, err
	}
	if err := port.MakeRaw(); err != nil {
		port.Close()
		return nil, err
	}
	attrs, err := port.GetAttr2()
	if err != nil {
		port.Close()
		return nil, err
	}
	attrs.MakeRaw()
	attrs.SetCustomSpeed(uint32(baud))
	if err := port.SetAttr2(goserial.TCSANOW, attrs); err != nil {
		port.Close()
		return nil, err
	}
	return &LinuxSerialPort{port: port}, nil
}

func (s *LinuxSerialPort) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *LinuxSerialPort) Read(n int) ([]byte, error) {
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

func (s *LinuxSerialPort) Available() (int, error) {
	return 0, nil
}

func (s *LinuxSerialPort) ResetInput() error {
	return s.port.Flush(goserial.TCIFLUSH)
}

func (s *LinuxSerialPort) Close() error {
	return s.port.Close()
}
