// Package servo implements the device-facing facade: a Servo binds an
// ID and a model's control table to a shared protocol.Protocol, and
// exposes the generic get/set semantics of spec §4.5 plus the
// per-device polling loop of §4.8.
package servo

import (
	"github.com/dbd/go-dynamixel/controltable"
	"github.com/dbd/go-dynamixel/protocol"
	"github.com/dbd/go-dynamixel/wire"
)

// UnitOverride is an optional explicit unit argument to Get/Set; the
// zero value means "no override, fall back to the servo/item default".
type UnitOverride struct {
	set  bool
	unit controltable.Unit
}

// With wraps a unit as an explicit override.
func With(u controltable.Unit) UnitOverride {
	return UnitOverride{set: true, unit: u}
}

// Servo is one physical device on a shared bus.
type Servo struct {
	Name  string
	ID    byte
	Proto protocol.Protocol
	Table *controltable.Table

	Params controltable.Params

	// DefaultUnit is this servo's configured default unit (spec §6;
	// config default is DEGREE). Nil means "no servo-level override",
	// falling through to each item's own DefaultUnit.
	DefaultUnit *controltable.Unit

	// Mirrors holds the last-known values from the polling loop (§4.8).
	Mirrors Mirrors
}

// Mirrors is the per-servo state a poller keeps fresh.
type Mirrors struct {
	PresentPosition float64
	Moving          bool
	TorqueEnabled   bool
}

// New binds id to proto using table, with servo-level conversion
// parameters and a default unit (DEGREE unless overridden, per the
// config default in spec §6).
func New(name string, id byte, proto protocol.Protocol, table *controltable.Table, params controltable.Params) *Servo {
	degree := controltable.DEGREE
	return &Servo{
		Name:        name,
		ID:          id,
		Proto:       proto,
		Table:       table,
		Params:      params,
		DefaultUnit: &degree,
	}
}

// resolveUnit implements spec §4.5's resolution order: explicit
// argument, then the Servo's default_unit, then the item's own
// default_unit.
func (s *Servo) resolveUnit(item controltable.Item, override UnitOverride) controltable.Unit {
	if override.set {
		return override.unit
	}
	if s.DefaultUnit != nil {
		return *s.DefaultUnit
	}
	return item.DefaultUnit
}

// Get issues a protocol-level read of item, reinterprets the raw
// unsigned wire value as signed two's complement of item.Length*8
// bits, and converts it to the resolved unit.
func (s *Servo) Get(item controltable.Item, override UnitOverride) (float64, wire.Response) {
	res := s.Proto.Read(s.ID, item.Address, item.Length)
	if !res.OK() {
		return 0, res
	}
	signed := wire.DecodeSigned(uint32(res.Int), item.Length)
	unit := s.resolveUnit(item, override)
	v, err := controltable.FromRaw(signed, unit, s.Params)
	if err != nil {
		return 0, wire.ErrResponse(wire.ErrRXError)
	}
	return v, res
}

// Set converts value from the resolved unit to raw, validates the
// signed raw value against item.Limits, two's-complement encodes
// negatives, and issues a protocol-level write. A limit violation is a local precondition
// failure: no bus traffic occurs, per spec §4.5.
func (s *Servo) Set(item controltable.Item, value float64, override UnitOverride) wire.Response {
	if !item.Writable {
		return wire.ErrResponse(wire.ErrAccess)
	}
	unit := s.resolveUnit(item, override)
	raw, err := controltable.ToRaw(value, unit, s.Params)
	if err != nil {
		return wire.ErrResponse(wire.ErrRXError)
	}
	if !item.Limits.Allows(raw) {
		return wire.ErrResponse(wire.ErrDataRange)
	}
	wireVal := raw
	if raw < 0 {
		wireVal = int64(wire.EncodeSigned(raw, item.Length))
	}
	return s.Proto.Write(s.ID, item.Address, item.Length, wireVal)
}

// GetByName looks up an item by its control-table name and Gets it.
func (s *Servo) GetByName(name string, override UnitOverride) (float64, wire.Response) {
	item, ok := s.Table.Get(name)
	if !ok {
		return 0, wire.ErrResponse(wire.ErrRXError)
	}
	return s.Get(item, override)
}

// SetByName looks up an item by its control-table name and Sets it.
func (s *Servo) SetByName(name string, value float64, override UnitOverride) wire.Response {
	item, ok := s.Table.Get(name)
	if !ok {
		return wire.ErrResponse(wire.ErrRXError)
	}
	return s.Set(item, value, override)
}
