package servo

import (
	"testing"

	"github.com/dbd/go-dynamixel/bus"
	"github.com/dbd/go-dynamixel/controltable"
	"github.com/dbd/go-dynamixel/protocol/v2"
	"github.com/dbd/go-dynamixel/transport"
	"github.com/stretchr/testify/require"
)

func newTestServo(t *testing.T) (*Servo, *transport.Simulator) {
	t.Helper()
	sim := transport.NewSimulator()
	b := bus.New(sim, sim, sim).WithDelays(0, 0)
	proto := v2.New(b)

	table := controltable.NewTable([]controltable.Item{
		{Name: "GOAL_POSITION", Address: 116, Length: 4, Writable: true, Limits: controltable.RangeLimits(0, 4095), DefaultUnit: controltable.DEGREE},
		{Name: "HOMING_OFFSET", Address: 20, Length: 4, Writable: true, Limits: controltable.RangeLimits(-1044479, 1044479), DefaultUnit: controltable.RAW},
	})
	s := New("xl430-1", 1, proto, table, controltable.Params{Resolution: 4096})
	return s, sim
}

func TestSetGoalPositionDegrees(t *testing.T) {
	s, sim := newTestServo(t)
	sim.Reply(statusOK())

	res := s.SetByName("GOAL_POSITION", 180, UnitOverride{})
	require.True(t, res.OK(), "errs=%v", res.Errs)

	written := sim.Written()
	require.Len(t, written, 1)
}

func TestSetOutOfRangeIsPreconditionNoBusTraffic(t *testing.T) {
	s, sim := newTestServo(t)

	res := s.SetByName("GOAL_POSITION", 720, UnitOverride{}) // 720 deg -> raw 8192, out of range
	require.False(t, res.OK(), "expected limit violation")
	require.Empty(t, sim.Written(), "limit violation must not generate bus traffic")
}

func TestSetNegativeHomingOffsetEncodesTwosComplement(t *testing.T) {
	s, sim := newTestServo(t)
	sim.Reply(statusOK())

	res := s.SetByName("HOMING_OFFSET", -1, With(controltable.RAW))
	require.True(t, res.OK(), "errs=%v", res.Errs)

	written := sim.Written()
	require.Len(t, written, 1)
	// last 4 bytes before the 2-byte CRC are the data field.
	pkt := written[0]
	data := pkt[len(pkt)-6 : len(pkt)-2]
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, data)
}

func statusOK() []byte {
	body := []byte{0x55, 0x00}
	stuffed := v2.Stuff(body)
	length := len(stuffed) + 2
	pkt := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, byte(length), byte(length >> 8)}
	pkt = append(pkt, stuffed...)
	crc := v2.CRC16(pkt)
	pkt = append(pkt, byte(crc), byte(crc>>8))
	return pkt
}
