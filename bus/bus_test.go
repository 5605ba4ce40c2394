package bus

import (
	"testing"

	"github.com/dbd/go-dynamixel/transport"
)

func TestWithBusDrivesTxEnableHighThenLow(t *testing.T) {
	sim := transport.NewSimulator()
	b := New(sim, sim, sim).WithDelays(0, 0)
	sim.Reply([]byte{0x01, 0x02})

	_, err := b.WithBus(
		func() error { _, e := sim.Write([]byte{0xAA}); return e },
		func() ([]byte, error) { return sim.Read(0) },
	)
	if err != nil {
		t.Fatalf("WithBus: %v", err)
	}

	hist := sim.PinHistory()
	if len(hist) != 2 || hist[0] != true || hist[1] != false {
		t.Fatalf("pin history = %v, want [true false]", hist)
	}
}

func TestWithBusReleasesLockOnWriteError(t *testing.T) {
	sim := transport.NewSimulator()
	b := New(sim, sim, sim).WithDelays(0, 0)

	boom := sentinelErr("write failed")
	_, err := b.WithBus(
		func() error { return boom },
		func() ([]byte, error) { return nil, nil },
	)
	if err != boom {
		t.Fatalf("WithBus err = %v, want %v", err, boom)
	}

	hist := sim.PinHistory()
	if len(hist) != 2 || hist[1] != false {
		t.Fatalf("pin history after error = %v, want tx-enable low at end", hist)
	}

	// The mutex must have been released despite the write error: a
	// second WithBus call must complete rather than deadlock.
	if _, err := b.WithBus(func() error { return nil }, func() ([]byte, error) { return nil, nil }); err != nil {
		t.Fatalf("second WithBus: %v", err)
	}
}

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }
