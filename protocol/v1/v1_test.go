package v1

import (
	"testing"

	"github.com/dbd/go-dynamixel/bus"
	"github.com/dbd/go-dynamixel/transport"
	"github.com/dbd/go-dynamixel/wire"
)

func newTestProtocol() (*Protocol, *transport.Simulator) {
	sim := transport.NewSimulator()
	b := bus.New(sim, sim, sim).WithDelays(0, 0)
	return New(b), sim
}

func TestPingTransmittedBytes(t *testing.T) {
	// spec §8 scenario 1: v1 PING of ID 1.
	p, sim := newTestProtocol()
	sim.Reply([]byte{0xFF, 0xFF, 0x01, 0x02, 0x00, 0xFC})

	res := p.Ping(1)
	if !res.OK() {
		t.Fatalf("Ping: not ok, errs=%v", res.Errs)
	}

	want := []byte{0xFF, 0xFF, 0x01, 0x02, 0x01, 0xFB}
	got := sim.Written()
	if len(got) != 1 || string(got[0]) != string(want) {
		t.Fatalf("transmitted = % X, want % X", got, want)
	}
}

func TestChecksumWorkedExample(t *testing.T) {
	// id=1 len=2 instr=1 -> FB, per spec §8 scenario 1.
	got := Checksum([]byte{0x01, 0x02, 0x01})
	if got != 0xFB {
		t.Fatalf("Checksum = %#x, want 0xfb", got)
	}
}

func TestReadDecodesLittleEndian(t *testing.T) {
	p, sim := newTestProtocol()
	status := buildStatusPacket(1, 0, []byte{0x2C, 0x01}) // 300
	sim.Reply(status)

	res := p.Read(1, 36, 2)
	if !res.OK() {
		t.Fatalf("Read: not ok, errs=%v", res.Errs)
	}
	if res.Int != 300 {
		t.Fatalf("Read.Int = %d, want 300", res.Int)
	}
}

func TestReadSplitAcrossTwoReads(t *testing.T) {
	// Forces the receiveFrom "default" short-read branch: the initial
	// drain only captures the header + length byte, and the rest of the
	// packet arrives on a second Read. transport.Simulator only drains
	// one queued Reply per Read call when its rxbuf is empty, so
	// queuing the packet split across two Reply calls reproduces a
	// packet still arriving over the wire in pieces.
	p, sim := newTestProtocol()
	status := buildStatusPacket(1, 0, []byte{0x2C, 0x01}) // 300
	if len(status) <= 4 {
		t.Fatalf("test packet too short to split, len=%d", len(status))
	}
	sim.Reply(status[:4])
	sim.Reply(status[4:])

	res := p.Read(1, 36, 2)
	if !res.OK() {
		t.Fatalf("Read: not ok, errs=%v", res.Errs)
	}
	if res.Int != 300 {
		t.Fatalf("Read.Int = %d, want 300", res.Int)
	}
}

func TestReadWithConcatenatedStatusPackets(t *testing.T) {
	// Forces splitSubPackets: BulkRead's devices each reply with their
	// own status packet, and they arrive back to back in a single
	// read. Queued as one Reply so they land in the same buffer.
	p, sim := newTestProtocol()
	first := buildStatusPacket(1, 0, []byte{0x2C, 0x01})
	second := buildStatusPacket(2, 0, []byte{0x00, 0x02})
	sim.Reply(append(append([]byte{}, first...), second...))

	res := p.BulkRead([]BulkReadTarget{{ID: 1, Addr: 36, Length: 2}, {ID: 2, Addr: 36, Length: 2}})
	if res.Kind != wire.KindSub {
		t.Fatalf("BulkRead.Kind = %v, want KindSub", res.Kind)
	}
	if len(res.Subs) != 2 || len(res.Errs) != 2 {
		t.Fatalf("got %d subs / %d errs, want 2/2", len(res.Subs), len(res.Errs))
	}
	if res.Errs[0] != wire.OK || res.Errs[1] != wire.OK {
		t.Fatalf("sub-packet errs = %v, want both OK", res.Errs)
	}
}

func buildStatusPacket(id byte, errByte byte, params []byte) []byte {
	body := append([]byte{errByte}, params...)
	length := len(body) + 1
	pkt := []byte{0xFF, 0xFF, id, byte(length)}
	pkt = append(pkt, body...)
	chk := Checksum(pkt[2:])
	pkt = append(pkt, chk)
	return pkt
}
