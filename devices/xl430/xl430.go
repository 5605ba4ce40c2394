// Package xl430 provides the XL430-W250-T control table and its
// single-register operating-mode write, the other half of the per-
// model virtual method spec §9's Open Question calls for.
package xl430

import (
	"github.com/dbd/go-dynamixel/controltable"
	"github.com/dbd/go-dynamixel/protocol"
	v2 "github.com/dbd/go-dynamixel/protocol/v2"
	"github.com/dbd/go-dynamixel/servo"
	"github.com/dbd/go-dynamixel/wire"
)

// OperatingMode selects one of the register's four documented modes.
type OperatingMode int64

const (
	OpVelocity         OperatingMode = 1
	OpPosition         OperatingMode = 3
	OpExtendedPosition OperatingMode = 4
	OpPWM              OperatingMode = 16
)

// Resolution is the XL430's encoder resolution.
const Resolution = 4096

// Table is the XL430-W250-T's static control table.
var Table = controltable.NewTable([]controltable.Item{
	{Name: "MODEL_NUMBER", Address: 0, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "MODEL_INFORMATION", Address: 2, Length: 4, DefaultUnit: controltable.RAW},
	{Name: "FIRMWARE_VERSION", Address: 6, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "ID", Address: 7, Length: 1, Writable: true, Limits: controltable.RangeLimits(0, 252), DefaultUnit: controltable.RAW},
	{Name: "BAUD", Address: 8, Length: 1, Writable: true, DefaultUnit: controltable.BAUD},
	{Name: "RETURN_DELAY_TIME", Address: 9, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "DRIVE_MODE", Address: 10, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "OPERATING_MODE", Address: 11, Length: 1, Writable: true, Limits: controltable.SetLimits(1, 3, 4, 16), DefaultUnit: controltable.RAW},
	{Name: "SECONDARY_SHADOW_ID", Address: 12, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "PROTOCOL_TYPE", Address: 13, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "HOMING_OFFSET", Address: 20, Length: 4, Writable: true, Limits: controltable.RangeLimits(-1044479, 1044479), DefaultUnit: controltable.RAW},
	{Name: "MOVING_THRESHOLD", Address: 24, Length: 4, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "TEMPERATURE_LIMIT", Address: 31, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "MAX_VOLTAGE_LIMIT", Address: 32, Length: 2, Writable: true, DefaultUnit: controltable.VOLTAGE},
	{Name: "MIN_VOLTAGE_LIMIT", Address: 34, Length: 2, Writable: true, DefaultUnit: controltable.VOLTAGE},
	{Name: "PWM_LIMIT", Address: 36, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "VELOCITY_LIMIT", Address: 44, Length: 4, Writable: true, DefaultUnit: controltable.RPM},
	{Name: "MAX_POSITION_LIMIT", Address: 48, Length: 4, Writable: true, Limits: controltable.RangeLimits(0, 4095), DefaultUnit: controltable.DEGREE},
	{Name: "MIN_POSITION_LIMIT", Address: 52, Length: 4, Writable: true, Limits: controltable.RangeLimits(0, 4095), DefaultUnit: controltable.DEGREE},
	{Name: "STARTUP_CONFIGURATION", Address: 60, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "SHUTDOWN", Address: 63, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "TORQUE_ENABLE", Address: 64, Length: 1, Writable: true, Limits: controltable.SetLimits(0, 1), DefaultUnit: controltable.RAW},
	{Name: "LED", Address: 65, Length: 1, Writable: true, Limits: controltable.SetLimits(0, 1), DefaultUnit: controltable.RAW},
	{Name: "STATUS_RETURN_LEVEL", Address: 68, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "REGISTERED_INSTRUCTION", Address: 69, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "HARDWARE_ERROR_STATUS", Address: 70, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "VELOCITY_I_GAIN", Address: 76, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "VELOCITY_P_GAIN", Address: 78, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "POSITION_D_GAIN", Address: 80, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "POSITION_I_GAIN", Address: 82, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "POSITION_P_GAIN", Address: 84, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "FEEDFORWARD_2ND_GAIN", Address: 88, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "FEEDFORWARD_1ST_GAIN", Address: 90, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "BUS_WATCHDOG", Address: 98, Length: 1, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "GOAL_PWM", Address: 100, Length: 2, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "GOAL_VELOCITY", Address: 104, Length: 4, Writable: true, DefaultUnit: controltable.RPM},
	{Name: "PROFILE_ACCELERATION", Address: 108, Length: 4, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "PROFILE_VELOCITY", Address: 112, Length: 4, Writable: true, DefaultUnit: controltable.RAW},
	{Name: "GOAL_POSITION", Address: 116, Length: 4, Writable: true, Limits: controltable.RangeLimits(0, 4095), DefaultUnit: controltable.DEGREE},
	{Name: "REALTIME_TICK", Address: 120, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "MOVING", Address: 122, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "MOVING_STATUS", Address: 123, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "PRESENT_PWM", Address: 124, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "PRESENT_LOAD", Address: 126, Length: 2, DefaultUnit: controltable.RAW},
	{Name: "PRESENT_VELOCITY", Address: 128, Length: 4, DefaultUnit: controltable.RPM},
	{Name: "PRESENT_POSITION", Address: 132, Length: 4, DefaultUnit: controltable.DEGREE},
	{Name: "VELOCITY_TRAJECTORY", Address: 136, Length: 4, DefaultUnit: controltable.RAW},
	{Name: "POSITION_TRAJECTORY", Address: 140, Length: 4, DefaultUnit: controltable.RAW},
	{Name: "PRESENT_INPUT_VOLTAGE", Address: 144, Length: 2, DefaultUnit: controltable.VOLTAGE},
	{Name: "PRESENT_TEMPERATURE", Address: 146, Length: 1, DefaultUnit: controltable.RAW},
	{Name: "BACKUP_READY", Address: 147, Length: 1, DefaultUnit: controltable.RAW},
})

// Device is an XL430-W250-T bound to a shared v2 bus.
type Device struct {
	*servo.Servo
	proto2 *v2.Protocol
}

// New binds id to a protocol/v2.Protocol with the XL430 control table
// and encoder resolution. The v2-only Clear/ControlTableBackup
// instructions need the concrete type, so New keeps it alongside the
// generic servo.Servo.
func New(name string, id byte, proto *v2.Protocol) *Device {
	params := controltable.Params{Resolution: Resolution}
	var asProto protocol.Protocol = proto
	return &Device{
		Servo:  servo.New(name, id, asProto, Table, params),
		proto2: proto,
	}
}

func (d *Device) Ping() wire.Response   { return d.Proto.Ping(d.ID) }
func (d *Device) Reboot() wire.Response { return d.Proto.Reboot(d.ID) }

// Clear forwards to the v2-only CLEAR instruction.
func (d *Device) Clear(mode v2.ClearMode) wire.Response {
	return d.proto2.Clear(d.ID, mode)
}

// ControlTableBackup forwards to the v2-only CONTROL_TABLE_BACKUP
// instruction.
func (d *Device) ControlTableBackup(mode v2.BackupMode) wire.Response {
	return d.proto2.ControlTableBackup(d.ID, mode)
}

func (d *Device) TorqueOn() wire.Response  { return d.SetByName("TORQUE_ENABLE", 1, servo.With(controltable.RAW)) }
func (d *Device) TorqueOff() wire.Response { return d.SetByName("TORQUE_ENABLE", 0, servo.With(controltable.RAW)) }
func (d *Device) LEDOn() wire.Response     { return d.SetByName("LED", 1, servo.With(controltable.RAW)) }
func (d *Device) LEDOff() wire.Response    { return d.SetByName("LED", 0, servo.With(controltable.RAW)) }

// SetOperatingMode implements the XL430's half of the per-model virtual
// "operating mode" method: a single register write, unlike AX-12A's
// CW/CCW angle-limit pair.
func (d *Device) SetOperatingMode(mode OperatingMode) wire.Response {
	return d.SetByName("OPERATING_MODE", float64(mode), servo.With(controltable.RAW))
}

func (d *Device) SetGoalPosition(value float64) wire.Response {
	return d.SetByName("GOAL_POSITION", value, servo.UnitOverride{})
}

func (d *Device) GetPresentPosition() (float64, wire.Response) {
	return d.GetByName("PRESENT_POSITION", servo.UnitOverride{})
}

func (d *Device) SetMaxPosition(value float64) wire.Response {
	return d.SetByName("MAX_POSITION_LIMIT", value, servo.UnitOverride{})
}

func (d *Device) SetMinPosition(value float64) wire.Response {
	return d.SetByName("MIN_POSITION_LIMIT", value, servo.UnitOverride{})
}

// GetPositionLimits returns (min, max), both converted to the servo's
// resolved unit.
func (d *Device) GetPositionLimits() (min, max float64, res wire.Response) {
	min, res = d.GetByName("MIN_POSITION_LIMIT", servo.UnitOverride{})
	if !res.OK() {
		return 0, 0, res
	}
	max, res = d.GetByName("MAX_POSITION_LIMIT", servo.UnitOverride{})
	return min, max, res
}

// FactoryReset issues INSTR_FACTORY_RESET, resetting settings to
// factory defaults: every setting by default, every setting except id
// when keepID, and every setting except id and baud when keepIDAndBaud
// (which takes precedence over keepID).
func (d *Device) FactoryReset(keepIDAndBaud, keepID bool) wire.Response {
	mode := v2.ResetAll
	switch {
	case keepIDAndBaud:
		mode = v2.ResetAllExceptIDBaud
	case keepID:
		mode = v2.ResetAllExceptID
	}
	return d.proto2.FactoryReset(d.ID, mode)
}

func (d *Device) SetGoalVelocity(value float64) wire.Response {
	return d.SetByName("GOAL_VELOCITY", value, servo.With(controltable.RPM))
}

func (d *Device) GetPresentVelocity() (float64, wire.Response) {
	return d.GetByName("PRESENT_VELOCITY", servo.With(controltable.RPM))
}

func (d *Device) SetGoalPWM(value float64) wire.Response {
	return d.SetByName("GOAL_PWM", value, servo.With(controltable.RAW))
}

func (d *Device) GetPresentPWM() (float64, wire.Response) {
	return d.GetByName("PRESENT_PWM", servo.With(controltable.RAW))
}

func (d *Device) SetBaudrate(bps float64) wire.Response {
	return d.SetByName("BAUD", bps, servo.UnitOverride{})
}

func (d *Device) GetBaud() (float64, wire.Response) {
	return d.GetByName("BAUD", servo.UnitOverride{})
}
