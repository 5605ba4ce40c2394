// Package dxllog is a thin wrapper over charmbracelet/log, giving the
// bus and protocol layers a structured logger that defaults to
// discarding everything so library consumers opt in explicitly.
package dxllog

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger the bus and protocol packages accept.
type Logger = log.Logger

// Nop returns a logger that discards all output, the default for a
// freshly constructed bus.Bus.
func Nop() *Logger {
	return log.New(io.Discard)
}

// New returns a logger writing to w with the prefix "dynamixel".
func New(w io.Writer) *Logger {
	l := log.New(w)
	l.SetPrefix("dynamixel")
	return l
}
