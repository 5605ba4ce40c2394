package servo

import "time"

// PollInterval is the inter-cycle sleep of the per-device polling
// loop, spec §4.8.
const PollInterval = 100 * time.Millisecond

// Poll runs the per-device polling loop until stop is closed: each
// cycle reads present position, the MOVING flag, and TORQUE_ENABLE,
// then sleeps PollInterval. A read failure leaves Mirrors at its last
// known value and the next cycle is attempted; it never aborts the
// loop (spec §4.8).
func (s *Servo) Poll(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		s.pollOnce()
		select {
		case <-stop:
			return
		case <-time.After(PollInterval):
		}
	}
}

func (s *Servo) pollOnce() {
	if item, ok := s.Table.Get("PRESENT_POSITION"); ok {
		if v, res := s.Get(item, UnitOverride{}); res.OK() {
			s.Mirrors.PresentPosition = v
		}
	}
	if item, ok := s.Table.Get("MOVING"); ok {
		if v, res := s.Get(item, With(0)); res.OK() {
			s.Mirrors.Moving = v != 0
		}
	}
	if item, ok := s.Table.Get("TORQUE_ENABLE"); ok {
		if v, res := s.Get(item, With(0)); res.OK() {
			s.Mirrors.TorqueEnabled = v != 0
		}
	}
}
