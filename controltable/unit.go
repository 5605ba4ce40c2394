package controltable

import (
	"math"

	"github.com/dbd/go-dynamixel/wire"
)

// Unit selects how a register's raw integer is interpreted, per spec
// §4.6.
type Unit int

const (
	RAW Unit = iota
	PERCENT
	RPM
	DEGREE
	MILLI_AMPERE
	VOLTAGE
	BAUD
)

// Params carries the per-servo constants unit conversion needs:
// encoder resolution (ticks per revolution), the velocity step size,
// and the model's baud-rate code table. A Params value is shared by
// every control-table access on one Servo.
type Params struct {
	Resolution int64
	RPMStep    float64
	Bauds      map[int64]int64 // bps -> code
}

// ToRaw converts x, expressed in unit, to the register's raw integer
// representation, per the spec §4.6 to_raw column.
func ToRaw(x float64, unit Unit, p Params) (int64, error) {
	switch unit {
	case RAW, PERCENT, MILLI_AMPERE:
		return int64(x), nil
	case DEGREE:
		return int64(math.Floor((x / 360) * float64(p.Resolution))), nil
	case VOLTAGE:
		return int64(math.Floor(x * 10)), nil
	case RPM:
		if p.RPMStep == 0 {
			return 0, wire.Precondition("controltable: servo has no rpm_step configured")
		}
		return int64(math.Floor(x / p.RPMStep)), nil
	case BAUD:
		code, ok := p.Bauds[int64(x)]
		if !ok {
			return 0, wire.Precondition("controltable: no baud code for %d bps", int64(x))
		}
		return code, nil
	default:
		return 0, wire.Precondition("controltable: unknown unit %d", unit)
	}
}

// FromRaw converts a register's raw integer r back to unit, per the
// spec §4.6 from_raw column.
func FromRaw(r int64, unit Unit, p Params) (float64, error) {
	switch unit {
	case RAW, PERCENT, MILLI_AMPERE:
		return float64(r), nil
	case DEGREE:
		return math.Floor((float64(r) / float64(p.Resolution)) * 360), nil
	case VOLTAGE:
		return float64(r) / 10, nil
	case RPM:
		return float64(r) * p.RPMStep, nil
	case BAUD:
		for bps, code := range p.Bauds {
			if code == r {
				return float64(bps), nil
			}
		}
		return 0, wire.Precondition("controltable: no bps for baud code %d", r)
	default:
		return 0, wire.Precondition("controltable: unknown unit %d", unit)
	}
}
