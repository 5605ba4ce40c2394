// Package config holds the construction-time options accepted when
// wiring up a Bus and its Servos, per spec §6.
package config

import (
	"time"

	"github.com/dbd/go-dynamixel/controltable"
)

// Options configures a Bus's transport and a Servo's default unit.
type Options struct {
	TxEnablePin string
	TxPin       string
	RxPin       string

	// BaudRate defaults to 1,000,000 bps, the Dynamixel factory default.
	BaudRate int

	// Timeout is the UART's per-read timeout; defaults to 1s.
	Timeout time.Duration

	// DefaultUnit is the per-servo default unit; defaults to DEGREE.
	DefaultUnit controltable.Unit
}

// Default returns Options populated with spec §6's defaults.
func Default() Options {
	return Options{
		BaudRate:    1_000_000,
		Timeout:     1 * time.Second,
		DefaultUnit: controltable.DEGREE,
	}
}
