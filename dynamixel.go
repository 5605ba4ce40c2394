// Package dynamixel is the root of a host-side driver for Dynamixel-
// family smart servos over a shared half-duplex serial bus. It ties
// together:
//
//   - transport: the UART/GPIO/clock hardware abstraction
//   - bus: the mutex-guarded tx-enable arbiter
//   - protocol/v1, protocol/v2: the two wire codecs
//   - controltable: the per-model register map and unit conversions
//   - servo: the device facade and polling loop
//   - devices/ax12a, devices/xl430: concrete control tables
//
// Callers typically construct a transport.Port/Pin, wrap it in a
// bus.Bus, pick a protocol version, and bind one or more servo.Servo
// (or a devices/... wrapper) to it.
package dynamixel
