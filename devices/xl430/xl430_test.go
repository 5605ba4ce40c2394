package xl430

import (
	"testing"

	"github.com/dbd/go-dynamixel/bus"
	v2 "github.com/dbd/go-dynamixel/protocol/v2"
	"github.com/dbd/go-dynamixel/transport"
	"github.com/stretchr/testify/require"
)

func newTestDevice(t *testing.T) (*Device, *transport.Simulator) {
	t.Helper()
	sim := transport.NewSimulator()
	b := bus.New(sim, sim, sim).WithDelays(0, 0)
	proto := v2.New(b)
	return New("xl430-1", 1, proto), sim
}

func statusOK(id byte) []byte {
	body := []byte{0x55, 0x00}
	stuffed := v2.Stuff(body)
	length := len(stuffed) + 2
	pkt := []byte{0xFF, 0xFF, 0xFD, 0x00, id, byte(length), byte(length >> 8)}
	pkt = append(pkt, stuffed...)
	crc := v2.CRC16(pkt)
	pkt = append(pkt, byte(crc), byte(crc>>8))
	return pkt
}

func TestSetGoalPositionAddressesCorrectRegister(t *testing.T) {
	d, sim := newTestDevice(t)
	sim.Reply(statusOK(1))

	res := d.SetGoalPosition(180)
	require.True(t, res.OK(), "errs=%v", res.Errs)

	written := sim.Written()
	require.Len(t, written, 1)
	// address field is bytes 8-9 (little-endian) of the instr packet.
	addr := int(written[0][9])<<8 | int(written[0][8])
	require.Equal(t, 116, addr, "want GOAL_POSITION")
}

func TestSetOperatingModeSingleRegister(t *testing.T) {
	d, sim := newTestDevice(t)
	sim.Reply(statusOK(1))

	res := d.SetOperatingMode(OpPosition)
	require.True(t, res.OK(), "errs=%v", res.Errs)

	written := sim.Written()
	addr := int(written[0][9])<<8 | int(written[0][8])
	require.Equal(t, 11, addr, "want OPERATING_MODE")
}
