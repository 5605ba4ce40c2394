// Package bus implements the half-duplex arbiter shared by protocol v1
// and v2 codecs: a mutex-guarded scope that drives the tx-enable pin,
// writes a request, and reads back whatever the device(s) put on the
// wire, per spec §4.1.
package bus

import (
	"sync"
	"time"

	"github.com/dbd/go-dynamixel/internal/dxllog"
	"github.com/dbd/go-dynamixel/transport"
)

// Default pre/post tx-enable settling delays, per spec §4.1. Test
// doubles override these via WithDelays.
const DefaultSettleDelay = 10 * time.Millisecond

// Bus serializes access to one physical half-duplex link. It owns the
// UART handle and the direction pin exclusively; callers never see
// either directly.
type Bus struct {
	mu sync.Mutex

	port transport.Port
	pin  transport.Pin
	clk  transport.Clock

	preDelay  time.Duration
	postDelay time.Duration

	log *dxllog.Logger
}

// New wraps a Port/Pin under a single mutex, using the real wall-clock
// settling delays.
func New(port transport.Port, pin transport.Pin, clk transport.Clock) *Bus {
	return &Bus{
		port:      port,
		pin:       pin,
		clk:       clk,
		preDelay:  DefaultSettleDelay,
		postDelay: DefaultSettleDelay,
		log:       dxllog.Nop(),
	}
}

// WithDelays overrides the pre/post tx-enable settling delays. Test
// doubles pass 0 so unit tests don't pay real wall-clock sleeps.
func (b *Bus) WithDelays(pre, post time.Duration) *Bus {
	b.preDelay = pre
	b.postDelay = post
	return b
}

// SetLogger replaces the bus's logger (a discarding logger by default).
func (b *Bus) SetLogger(l *dxllog.Logger) {
	b.log = l
}

// WithBus runs write under the bus's exclusive lock: tx-enable high,
// settle, write, settle, tx-enable low, then drains whatever bytes
// arrive via receive, finally flushing any residual input. Exiting by
// any path — including a panic — releases the lock and drives
// tx-enable low before returning, per spec §4.1 and §5's cancellation
// requirement.
func (b *Bus) WithBus(write func() error, receive func() ([]byte, error)) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pinHigh := true
	defer func() {
		if pinHigh {
			b.pin.Set(false)
		}
	}()

	if err := b.pin.Set(true); err != nil {
		return nil, err
	}
	b.clk.Sleep(b.preDelay)

	if err := write(); err != nil {
		return nil, err
	}
	b.clk.Sleep(b.postDelay)

	if err := b.pin.Set(false); err != nil {
		return nil, err
	}
	pinHigh = false

	buf, err := receive()

	b.port.ResetInput()

	return buf, err
}

// Port exposes the underlying transport for the receive-path helpers
// (drain/available/read) that protocol codecs implement themselves;
// it is only ever called from inside a WithBus callback, so callers
// remain serialized by the mutex above.
func (b *Bus) Port() transport.Port {
	return b.port
}

// Log returns the bus's logger. Neither the bus nor the protocol
// codecs currently emit any records through it.
func (b *Bus) Log() *dxllog.Logger {
	return b.log
}
