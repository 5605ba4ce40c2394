package transport

import (
	"sync"
	"time"
)

// Simulator is an in-memory Port+Pin+Clock triple for tests. It records
// every tx-enable pin transition (for asserting the bus arbiter's
// high/write/low discipline) and replies to writes with canned byte
// strings queued by the test, the same shape as
// driver/mjolnir.Simulator's channel-actor loop but adapted to a
// request/reply register-protocol bus instead of a motion-command one.
type Simulator struct {
	mu sync.Mutex

	pinHistory []bool
	written    [][]byte
	replies    [][]byte
	rxbuf      []byte
}

// NewSimulator returns a ready Simulator with no queued replies.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Reply enqueues bytes to be handed back by the next Read call(s), as
// if a device had placed them on the bus.
func (s *Simulator) Reply(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, append([]byte(nil), b...))
}

// Written returns every byte slice passed to Write so far, in order.
func (s *Simulator) Written() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.written))
	copy(out, s.written)
	return out
}

// PinHistory returns every value Set was called with, in order. The
// bus arbiter's per-transaction discipline is high, write, low; tests
// assert on this slice to confirm that ordering held.
func (s *Simulator) PinHistory() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bool, len(s.pinHistory))
	copy(out, s.pinHistory)
	return out
}

func (s *Simulator) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, append([]byte(nil), p...))
	return len(p), nil
}

func (s *Simulator) Read(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.rxbuf) == 0 && len(s.replies) > 0 {
		s.rxbuf = append(s.rxbuf, s.replies[0]...)
		s.replies = s.replies[1:]
	}
	if len(s.rxbuf) == 0 {
		return nil, nil
	}
	size := n
	if size <= 0 || size > len(s.rxbuf) {
		size = len(s.rxbuf)
	}
	out := s.rxbuf[:size]
	s.rxbuf = s.rxbuf[size:]
	return out, nil
}

func (s *Simulator) Available() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.rxbuf)
	for _, r := range s.replies {
		n += len(r)
	}
	return n, nil
}

func (s *Simulator) ResetInput() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rxbuf = nil
	return nil
}

func (s *Simulator) Set(high bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinHistory = append(s.pinHistory, high)
	return nil
}

// Sleep is a no-op: simulated tests never want to pay the bus
// arbiter's real tx-enable settling delays.
func (s *Simulator) Sleep(time.Duration) {}
