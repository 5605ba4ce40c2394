// Package ax12a provides the AX-12A control table and the per-model
// operating-mode quirk: AX-12A exposes "wheel vs joint" mode by writing
// the CW/CCW angle-limit pair rather than a single register (spec §9
// Open Question, resolved per-model).
package ax12a

import (
	"github.com/dbd/go-dynamixel/controltable"
	"github.com/dbd/go-dynamixel/protocol"
	v1 "github.com/dbd/go-dynamixel/protocol/v1"
	"github.com/dbd/go-dynamixel/servo"
	"github.com/dbd/go-dynamixel/wire"
)

// OperatingMode selects joint (angle-limited) vs wheel (continuous
// rotation) mode.
type OperatingMode int

const (
	OpJoint OperatingMode = iota
	OpWheel
)

// Table is the AX-12A's static control table, transliterated from the
// reference firmware's register map.
var Table = controltable.NewTable([]controltable.Item{
	{Name: "MODEL_NUMBER", Address: 0, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "FIRMWARE_VERSION", Address: 2, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "ID", Address: 3, Length: 1, Writable: true, Limits: controltable.RangeLimits(0, 252), DefaultUnit: controltable.RAW},
	{Name: "BAUD", Address: 4, Length: 1, Writable: true, DefaultUnit: controltable.BAUD},
	{Name: "RETURN_DELAY_TIME", Address: 5, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "CW_ANGLE_LIMIT", Address: 6, Length: 2, Writable: true, Limits: controltable.RangeLimits(0, 1023), DefaultUnit: controltable.DEGREE},
	{Name: "CCW_ANGLE_LIMIT", Address: 8, Length: 2, Writable: true, Limits: controltable.RangeLimits(0, 1023), DefaultUnit: controltable.DEGREE},
	{Name: "TEMPERATURE_LIMIT", Address: 11, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "MIN_VOLTAGE_LIMIT", Address: 12, Length: 1, Writable: true, DefaultUnit: controltable.VOLTAGE},
	{Name: "MAX_VOLTAGE_LIMIT", Address: 13, Length: 1, Writable: true, DefaultUnit: controltable.VOLTAGE},
	{Name: "MAX_TORQUE", Address: 14, Length: 2, Writable: true, Limits: controltable.RangeLimits(0, 1023), DefaultUnit: controltable.RAW},
	{Name: "STATUS_RETURN_LEVEL", Address: 16, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "ALARM_LED", Address: 17, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "SHUTDOWN", Address: 18, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "TORQUE_ENABLE", Address: 24, Length: 1, Writable: true, Limits: controltable.SetLimits(0, 1), DefaultUnit: controltable.RAW},
	{Name: "LED", Address: 25, Length: 1, Writable: true, Limits: controltable.SetLimits(0, 1), DefaultUnit: controltable.RAW},
	{Name: "CW_COMPLIANCE_MARGIN", Address: 26, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "CCW_COMPLIANCE_MARGIN", Address: 27, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "CW_COMPLIANCE_SLOPE", Address: 28, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "CCW_COMPLIANCE_SLOPE", Address: 29, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "GOAL_POSITION", Address: 30, Length: 2, Writable: true, Limits: controltable.RangeLimits(0, 1023), DefaultUnit: controltable.DEGREE},
	{Name: "MOVING_SPEED", Address: 32, Length: 2, Writable: true, DefaultUnit: controltable.RPM},
	{Name: "TORQUE_LIMIT", Address: 34, Length: 2, Writable: true, Limits: controltable.RangeLimits(0, 1023), DefaultUnit: controltable.RAW},
	{Name: "PRESENT_POSITION", Address: 36, Length: 2, DefaultUnit: controltable.DEGREE},
	{Name: "PRESENT_SPEED", Address: 38, Length: 2, DefaultUnit: controltable.RPM},
	{Name: "PRESENT_LOAD", Address: 40, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "PRESENT_VOLTAGE", Address: 42, Length: 1, DefaultUnit: controltable.VOLTAGE},
	{Name: "PRESENT_TEMPERATURE", Address: 43, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "REGISTERED", Address: 44, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "MOVING", Address: 46, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "LOCK", Address: 47, Length: 1, Writable: true, Limits: controltable.SetLimits(0, 1), DefaultUnit: controltable.RAW},
	{Name: "PUNCH", Address: 48, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
})

// Resolution is the AX-12A's encoder resolution, used for DEGREE
// conversions (spec §4.6).
const Resolution = 1024

// Device is an AX-12A bound to a shared v1 bus.
type Device struct {
	*servo.Servo
	proto1 *v1.Protocol
}

// New binds id to proto with the AX-12A control table and encoder
// resolution. proto1 is kept alongside the generic servo.Servo so
// instructions outside the shared protocol.Protocol interface
// (FactoryReset's sub-modes) can reach it.
func New(name string, id byte, proto *v1.Protocol) *Device {
	params := controltable.Params{Resolution: Resolution}
	var asProto protocol.Protocol = proto
	return &Device{
		Servo:  servo.New(name, id, asProto, Table, params),
		proto1: proto,
	}
}

func (d *Device) Ping() wire.Response { return d.Proto.Ping(d.ID) }
func (d *Device) Reboot() wire.Response { return d.Proto.Reboot(d.ID) }

func (d *Device) TorqueOn() wire.Response  { return d.SetByName("TORQUE_ENABLE", 1, servo.With(controltable.RAW)) }
func (d *Device) TorqueOff() wire.Response { return d.SetByName("TORQUE_ENABLE", 0, servo.With(controltable.RAW)) }
func (d *Device) LEDOn() wire.Response     { return d.SetByName("LED", 1, servo.With(controltable.RAW)) }
func (d *Device) LEDOff() wire.Response    { return d.SetByName("LED", 0, servo.With(controltable.RAW)) }

// SetOperatingMode implements the AX-12A's half of the per-model
// virtual "operating mode" method: wheel mode is a CW/CCW angle-limit
// pair of (0,0); joint mode restores the default (0,1023) limits.
func (d *Device) SetOperatingMode(mode OperatingMode) wire.Response {
	var cw, ccw float64
	switch mode {
	case OpWheel:
		cw, ccw = 0, 0
	default:
		cw, ccw = 0, 1023
	}
	if res := d.SetByName("CW_ANGLE_LIMIT", cw, servo.With(controltable.RAW)); !res.OK() {
		return res
	}
	return d.SetByName("CCW_ANGLE_LIMIT", ccw, servo.With(controltable.RAW))
}

func (d *Device) SetGoalPosition(value float64) wire.Response {
	return d.SetByName("GOAL_POSITION", value, servo.UnitOverride{})
}

func (d *Device) GetPresentPosition() (float64, wire.Response) {
	return d.GetByName("PRESENT_POSITION", servo.UnitOverride{})
}

func (d *Device) SetGoalVelocity(value float64) wire.Response {
	return d.SetByName("MOVING_SPEED", value, servo.UnitOverride{})
}

func (d *Device) GetPresentVelocity() (float64, wire.Response) {
	return d.GetByName("PRESENT_SPEED", servo.UnitOverride{})
}

func (d *Device) SetBaudrate(bps float64) wire.Response {
	return d.SetByName("BAUD", bps, servo.UnitOverride{})
}

func (d *Device) GetBaud() (float64, wire.Response) {
	return d.GetByName("BAUD", servo.UnitOverride{})
}

// SetMaxPosition and SetMinPosition write the same CW/CCW angle-limit
// registers SetOperatingMode uses, per the original device module.
func (d *Device) SetMaxPosition(value float64) wire.Response {
	return d.SetByName("CW_ANGLE_LIMIT", value, servo.UnitOverride{})
}

func (d *Device) SetMinPosition(value float64) wire.Response {
	return d.SetByName("CCW_ANGLE_LIMIT", value, servo.UnitOverride{})
}

// GetPositionLimits returns (min, max), both converted to the servo's
// resolved unit.
func (d *Device) GetPositionLimits() (min, max float64, res wire.Response) {
	max, res = d.GetByName("CW_ANGLE_LIMIT", servo.UnitOverride{})
	if !res.OK() {
		return 0, 0, res
	}
	min, res = d.GetByName("CCW_ANGLE_LIMIT", servo.UnitOverride{})
	return min, max, res
}

// FactoryReset issues INSTR_FACTORY_RESET, resetting settings to
// factory defaults: every setting by default, every setting except id
// when keepID, and every setting except id and baud when keepIDAndBaud
// (which takes precedence over keepID).
func (d *Device) FactoryReset(keepIDAndBaud, keepID bool) wire.Response {
	mode := v1.ResetAll
	switch {
	case keepIDAndBaud:
		mode = v1.ResetAllExceptIDBaud
	case keepID:
		mode = v1.ResetAllExceptID
	}
	return d.proto1.FactoryReset(d.ID, mode)
}
