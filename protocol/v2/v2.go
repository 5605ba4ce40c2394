// Package v2 implements the Dynamixel Protocol 2.0 wire codec: packet
// framing, CRC-16 validation, byte stuffing, and the instruction set
// used by current-generation servos (XL, XM, XH, ... series).
package v2

import (
	"github.com/dbd/go-dynamixel/bus"
	"github.com/dbd/go-dynamixel/wire"
)

// ResetMode selects the scope of a FactoryReset.
type ResetMode byte

const (
	ResetAll              ResetMode = 0xFF
	ResetAllExceptID       ResetMode = 0x01
	ResetAllExceptIDBaud   ResetMode = 0x02
)

// ClearMode selects what Clear erases.
type ClearMode byte

const (
	ClearPosition ClearMode = 0x01
	ClearError    ClearMode = 0x02
)

var clearMagic = map[ClearMode][]byte{
	ClearPosition: {0x44, 0x58, 0x4C, 0x22},
	ClearError:    {0x45, 0x52, 0x43, 0x4C},
}

// BackupMode selects store vs restore for ControlTableBackup.
type BackupMode byte

const (
	BackupStore   BackupMode = 0x01
	BackupRestore BackupMode = 0x02
)

var backupMagic = []byte{0x43, 0x54, 0x52, 0x4C} // "CTRL"

// SyncReadTarget is one ID in a SyncRead/FastSyncRead.
type SyncReadTarget = byte

// BulkReadTarget is one (id, addr, length) triple in a BulkRead.
type BulkReadTarget struct {
	ID     byte
	Addr   uint16
	Length int
}

// SyncWriteValue is one (id, value) pair in a SyncWrite, all sharing
// the call's addr/length.
type SyncWriteValue struct {
	ID    byte
	Value int64
}

// BulkWriteValue is one (id, addr, length, value) entry in a BulkWrite.
type BulkWriteValue struct {
	ID     byte
	Addr   uint16
	Length int
	Value  int64
}

// Protocol drives one physical v2 bus.
type Protocol struct {
	bus *bus.Bus
}

// New wraps a bus.Bus as a v2 Protocol.
func New(b *bus.Bus) *Protocol {
	return &Protocol{bus: b}
}

// transact runs one request/response exchange under the bus lock. The
// full §4.4 resync procedure (including its blocking follow-up reads)
// happens inside the WithBus receive callback, so it completes before
// tx-enable could be re-asserted by a queued transaction; only the
// already-computed Response crosses back out.
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

// Ping issues INSTR_PING and returns the raw model/firmware params on
// success.
func (p *Protocol) Ping(id byte) wire.Response {
	res := p.transact(id, []byte{InstrPing})
	return statusParams(res)
}

// Read issues INSTR_READ and decodes the returned bytes as an unsigned
// little-endian integer; callers (the control-table layer) reinterpret
// sign and units themselves.
func (p *Protocol) Read(id byte, addr uint16, length int) wire.Response {
	params := append([]byte{InstrRead}, le16(int(addr))...)
	params = append(params, le16(length)...)
	res := p.transact(id, params)
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

// Write issues INSTR_WRITE with raw (already two's-complement-encoded)
// data of the given width.
func (p *Protocol) Write(id byte, addr uint16, length int, data int64) wire.Response {
	params := append([]byte{InstrWrite}, le16(int(addr))...)
	params = append(params, leN(data, length)...)
	return p.transact(id, params)
}

// RegWrite issues INSTR_REG_WRITE, staged for a later Action.
func (p *Protocol) RegWrite(id byte, addr uint16, length int, data int64) wire.Response {
	params := append([]byte{InstrRegWrite}, le16(int(addr))...)
	params = append(params, leN(data, length)...)
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

// Clear issues INSTR_CLEAR with the mode's required magic payload.
func (p *Protocol) Clear(id byte, mode ClearMode) wire.Response {
	magic, ok := clearMagic[mode]
	if !ok {
		return wire.ErrResponse(wire.ErrRXError)
	}
	params := append([]byte{InstrClear, byte(mode)}, magic...)
	return p.transact(id, params)
}

// ControlTableBackup issues INSTR_CONTROL_TABLE_BACKUP with the
// required "CTRL" magic payload.
func (p *Protocol) ControlTableBackup(id byte, mode BackupMode) wire.Response {
	params := append([]byte{InstrControlTableBackup, byte(mode)}, backupMagic...)
	return p.transact(id, params)
}

// SyncRead issues INSTR_SYNC_READ against Broadcast, requesting addr/
// length from every id in ids. The devices reply with one status
// packet each; receiveFrom's splitSubPackets path surfaces them as a
// KindSub response.
func (p *Protocol) SyncRead(addr uint16, length int, ids []SyncReadTarget) wire.Response {
	params := append([]byte{InstrSyncRead}, le16(int(addr))...)
	params = append(params, le16(length)...)
	params = append(params, ids...)
	return p.transact(Broadcast, params)
}

// FastSyncRead issues INSTR_FAST_SYNC_READ, which returns a single
// concatenated status packet instead of one per id.
func (p *Protocol) FastSyncRead(addr uint16, length int, ids []SyncReadTarget) wire.Response {
	params := append([]byte{InstrFastSyncRead}, le16(int(addr))...)
	params = append(params, le16(length)...)
	params = append(params, ids...)
	return p.transact(Broadcast, params)
}

// SyncWrite issues INSTR_SYNC_WRITE, writing addr/length sized data to
// every (id, value) pair.
func (p *Protocol) SyncWrite(addr uint16, length int, values []SyncWriteValue) wire.Response {
	params := append([]byte{InstrSyncWrite}, le16(int(addr))...)
	params = append(params, le16(length)...)
	for _, v := range values {
		params = append(params, v.ID)
		params = append(params, leN(v.Value, length)...)
	}
	return p.transact(Broadcast, params)
}

// BulkRead issues INSTR_BULK_READ, each target specifying its own
// addr/length.
func (p *Protocol) BulkRead(targets []BulkReadTarget) wire.Response {
	params := []byte{InstrBulkRead}
	for _, t := range targets {
		params = append(params, t.ID)
		params = append(params, le16(int(t.Addr))...)
		params = append(params, le16(t.Length)...)
	}
	return p.transact(Broadcast, params)
}

// FastBulkRead issues INSTR_FAST_BULK_READ, a single-status-packet
// variant of BulkRead.
func (p *Protocol) FastBulkRead(targets []BulkReadTarget) wire.Response {
	params := []byte{InstrFastBulkRead}
	for _, t := range targets {
		params = append(params, t.ID)
		params = append(params, le16(int(t.Addr))...)
		params = append(params, le16(t.Length)...)
	}
	return p.transact(Broadcast, params)
}

// BulkWrite issues INSTR_BULK_WRITE, each target specifying its own
// addr/length/value.
func (p *Protocol) BulkWrite(targets []BulkWriteValue) wire.Response {
	params := []byte{InstrBulkWrite}
	for _, t := range targets {
		params = append(params, t.ID)
		params = append(params, le16(int(t.Addr))...)
		params = append(params, le16(t.Length)...)
		params = append(params, leN(t.Value, t.Length)...)
	}
	return p.transact(Broadcast, params)
}

// statusParams strips a single status packet's header/instr/err/crc
// framing, returning just the params region as a BytesResponse. Multi-
// packet (KindSub) responses pass through unchanged; the caller decides
// how to interpret per-id sub-responses.
func statusParams(res wire.Response) wire.Response {
	if res.Kind != wire.KindBytes {
		return res
	}
	if !res.OK() || len(res.Bytes) < headerLen+3 {
		return wire.ErrResponse(res.Errs...)
	}
	params := res.Bytes[headerLen+2 : len(res.Bytes)-2]
	return wire.BytesResponse(params).WithErrs(res.Errs)
}
