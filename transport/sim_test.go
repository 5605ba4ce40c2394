package transport

import "testing"

func TestSimulatorWriteRecordsBytes(t *testing.T) {
	sim := NewSimulator()
	if _, err := sim.Write([]byte{0xFF, 0xFF, 0x01}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := sim.Written()
	if len(got) != 1 || string(got[0]) != string([]byte{0xFF, 0xFF, 0x01}) {
		t.Fatalf("Written() = %v", got)
	}
}

func TestSimulatorReplyThenRead(t *testing.T) {
	sim := NewSimulator()
	sim.Reply([]byte{0x01, 0x02, 0x03})

	b, err := sim.Read(2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(b) != string([]byte{0x01, 0x02}) {
		t.Fatalf("Read(2) = %v", b)
	}

	b, err = sim.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(b) != string([]byte{0x03}) {
		t.Fatalf("Read(0) = %v", b)
	}
}

func TestSimulatorReadWithNothingQueuedReturnsNil(t *testing.T) {
	sim := NewSimulator()
	b, err := sim.Read(4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if b != nil {
		t.Fatalf("Read() = %v, want nil", b)
	}
}

func TestSimulatorPinHistory(t *testing.T) {
	sim := NewSimulator()
	sim.Set(true)
	sim.Set(false)
	got := sim.PinHistory()
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("PinHistory() = %v", got)
	}
}
