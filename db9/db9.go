// Package db9 drives the five switch lines of a DB9 digital joystick.
//
// Outputs is positive logic; the lines themselves are active-low: a closed
// switch pulls its line to ground.
package db9

import (
	"strings"

	"snes2db9/pins"
)

// Outputs is a joystick state, one bit per switch.
type Outputs uint8

const (
	Up    Outputs = 1
	Down  Outputs = 2
	Left  Outputs = 4
	Right Outputs = 8
	Fire  Outputs = 128

	None Outputs = 0
	All         = Up | Down | Left | Right | Fire
)

var lines = [...]struct {
	bit  Outputs
	pin  pins.Pin
	name string
}{
	{Up, pins.Up, "UP"},
	{Down, pins.Down, "DOWN"},
	{Left, pins.Left, "LEFT"},
	{Right, pins.Right, "RIGHT"},
	{Fire, pins.Fire, "FIRE"},
}

func (o Outputs) String() string {
	if o&All == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, l := range lines {
		if o&l.bit == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(l.name)
	}
	return sb.String()
}

// SetOutputs writes all five lines through s: a set bit drives its line low,
// a clear bit drives it high.
func SetOutputs(o Outputs, s pins.Setter) {
	NewDriver(s, false).Set(o)
}

// Driver writes Outputs to the joystick lines.
type Driver struct {
	pins     pins.Setter
	inactive pins.Level
}

// NewDriver returns a Driver writing through s. With openDrain an inactive
// line is released (HighZ) instead of driven high, for ports that bring
// their own pull-ups. It panics if s is nil.
func NewDriver(s pins.Setter, openDrain bool) *Driver {
	if s == nil {
		panic("db9: nil pin setter")
	}
	d := &Driver{pins: s, inactive: pins.High}
	if openDrain {
		d.inactive = pins.HighZ
	}
	return d
}

// Set writes UP, DOWN, LEFT, RIGHT and FIRE, in that order.
func (d *Driver) Set(o Outputs) {
	for _, l := range lines {
		if o&l.bit != 0 {
			d.pins.SetPin(l.pin, pins.Low)
		} else {
			d.pins.SetPin(l.pin, d.inactive)
		}
	}
}
