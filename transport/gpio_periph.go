package transport

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphPin backs the half-duplex tx-enable line with a periph.io GPIO
// output pin.
type PeriphPin struct {
	pin gpio.PinOut
}

// InitHost performs the one-time periph.io host driver registration.
// Callers open all of a process's pins after a single InitHost call.
func InitHost() error {
	_, err := host.Init()
	return err
}

// OpenPeriphPin resolves a pin by name (e.g. "GPIO17") and configures it
// as an output, initially low.
func OpenPeriphPin(name string) (*PeriphPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("transport: no such gpio pin %q", name)
	}
	out, ok := p.(gpio.PinOut)
	if !ok {
		return nil, fmt.Errorf("transport: pin %q is not an output", name)
	}
	if err := out.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &PeriphPin{pin: out}, nil
}

func (p *PeriphPin) Set(high bool) error {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	return p.pin.Out(level)
}
