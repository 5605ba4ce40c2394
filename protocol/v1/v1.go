package v1

import (
	"github.com/dbd/go-dynamixel/bus"
	"github.com/dbd/go-dynamixel/wire"
)

// ResetMode selects the scope of a FactoryReset.
type ResetMode byte

const (
	ResetAll            ResetMode = 0xFF
	ResetAllExceptID     ResetMode = 0x01
	ResetAllExceptIDBaud ResetMode = 0x02
)

// SyncWriteValue is one (id, value) pair in a SyncWrite, sharing the
// call's addr/length.
type SyncWriteValue struct {
	ID    byte
	Value int64
}

// BulkReadTarget is one (id, addr, length) triple in a BulkRead.
type BulkReadTarget struct {
	ID     byte
	Addr   byte
	Length int
}

// Protocol drives one physical v1 bus.
type Protocol struct {
	bus *bus.Bus
}

// New wraps a bus.Bus as a v1 Protocol.
func New(b *bus.Bus) *Protocol {
	return &Protocol{bus: b}
}

func (p *Protocol) transact(id byte, instrAndParams []byte) wire.Response {
	packet := buildPacket(id, instrAndParams)

	var result wire.Response
	_, err := p.bus.WithBus(
		func() error {
			_, werr := p.bus.Port().Write(packet)
			return werr
		},
		func() ([]byte, error) {
			result = Receive(p.bus.Port())
			return nil, nil
		},
	)
	if err != nil {
		return wire.ErrResponse(wire.ErrRXError)
	}
	return result
}

// Ping issues INSTR_PING.
func (p *Protocol) Ping(id byte) wire.Response {
	res := p.transact(id, []byte{InstrPing})
	return statusParams(res)
}

// Read issues INSTR_READ and decodes the returned bytes as an unsigned
// little-endian integer. addr is truncated to a byte: v1 control tables
// never exceed a 256-byte address space.
func (p *Protocol) Read(id byte, addr uint16, length int) wire.Response {
	res := p.transact(id, []byte{InstrRead, byte(addr), byte(length)})
	body := statusParams(res)
	if !body.OK() {
		return body
	}
	var v int64
	for i, b := range body.Bytes {
		v |= int64(b) << (8 * uint(i))
	}
	return wire.Int64Response(v).WithErrs(body.Errs)
}

// Write issues INSTR_WRITE with raw two's-complement-encoded data.
func (p *Protocol) Write(id byte, addr uint16, length int, data int64) wire.Response {
	params := append([]byte{InstrWrite, byte(addr)}, leN(data, length)...)
	return p.transact(id, params)
}

// RegWrite issues INSTR_REG_WRITE, staged for a later Action.
func (p *Protocol) RegWrite(id byte, addr uint16, length int, data int64) wire.Response {
	params := append([]byte{InstrRegWrite, byte(addr)}, leN(data, length)...)
	return p.transact(id, params)
}

// Action issues INSTR_ACTION, triggering every pending RegWrite.
func (p *Protocol) Action(id byte) wire.Response {
	return p.transact(id, []byte{InstrAction})
}

// FactoryReset issues INSTR_FACTORY_RESET with the given scope.
func (p *Protocol) FactoryReset(id byte, mode ResetMode) wire.Response {
	return p.transact(id, []byte{InstrFactoryReset, byte(mode)})
}

// Reboot issues INSTR_REBOOT.
func (p *Protocol) Reboot(id byte) wire.Response {
	return p.transact(id, []byte{InstrReboot})
}

// SyncWrite issues INSTR_SYNC_WRITE, writing addr/length sized data to
// every (id, value) pair, against Broadcast.
func (p *Protocol) SyncWrite(addr byte, length int, values []SyncWriteValue) wire.Response {
	params := []byte{InstrSyncWrite, addr, byte(length), byte(length >> 8)}
	for _, v := range values {
		params = append(params, v.ID)
		params = append(params, leN(v.Value, length)...)
	}
	return p.transact(Broadcast, params)
}

// BulkRead issues INSTR_BULK_READ, each target specifying its own
// addr/length, against Broadcast.
func (p *Protocol) BulkRead(targets []BulkReadTarget) wire.Response {
	params := []byte{InstrBulkRead, 0x00}
	for _, t := range targets {
		params = append(params, byte(t.Length), t.ID, t.Addr)
	}
	return p.transact(Broadcast, params)
}

// statusParams strips a single status packet's header/err/checksum
// framing, returning just the params region as a BytesResponse.
func statusParams(res wire.Response) wire.Response {
	if res.Kind != wire.KindBytes {
		return res
	}
	if !res.OK() || len(res.Bytes) < headerLen+2 {
		return wire.ErrResponse(res.Errs...)
	}
	params := res.Bytes[headerLen+1 : len(res.Bytes)-1]
	return wire.BytesResponse(params).WithErrs(res.Errs)
}
