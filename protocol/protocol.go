// Package protocol defines the codec-agnostic surface that
// controltable and servo drive against; v1.Protocol and v2.Protocol
// both satisfy it.
package protocol

import "github.com/dbd/go-dynamixel/wire"

// Protocol is the shared instruction set both wire versions implement.
// Version-specific instructions (v2's Clear/ControlTableBackup/Sync/
// Bulk family) are reached through a type assertion back to *v1.Protocol
// or *v2.Protocol, mirroring how the control-table layer already needs
// per-model knowledge to pick addresses.
type Protocol interface {
	Ping(id byte) wire.Response
	Read(id byte, addr uint16, length int) wire.Response
	Write(id byte, addr uint16, length int, data int64) wire.Response
	RegWrite(id byte, addr uint16, length int, data int64) wire.Response
	Action(id byte) wire.Response
	Reboot(id byte) wire.Response
}
