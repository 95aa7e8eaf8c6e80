// Package mapper turns a SNES controller word into DB9 joystick outputs.
package mapper

import (
	"snes2db9/db9"
	"snes2db9/snes"
)

// DefaultAutofireCycle is the autofire half-period in milliseconds, one
// coarse scheduler period.
const DefaultAutofireCycle uint16 = 16

// ButtonMasks selects which controller buttons drive the extra functions.
// A zero mask disables its function.
type ButtonMasks struct {
	Fire     snes.Buttons
	Jump     snes.Buttons
	Autofire snes.Buttons
}

// Mapper holds the autofire clock. It is not safe for concurrent use.
type Mapper struct {
	masks ButtonMasks

	acc   uint32
	cycle uint16
	phase bool
}

// New returns a Mapper using a copy of masks and the default autofire cycle.
func New(masks ButtonMasks) *Mapper {
	return &Mapper{masks: masks, cycle: DefaultAutofireCycle}
}

// Masks returns the button masks the Mapper was created with.
func (m *Mapper) Masks() ButtonMasks { return m.masks }

// SetAutofireCycle sets the autofire half-period. 0 disables autofire and
// drops the accumulated time; otherwise the accumulated time is kept modulo
// the new cycle.
func (m *Mapper) SetAutofireCycle(ms uint16) {
	m.cycle = ms
	if ms == 0 {
		m.acc = 0
	} else {
		m.acc %= uint32(ms)
	}
}

// AutofireCycle returns the autofire half-period in milliseconds.
func (m *Mapper) AutofireCycle() uint16 { return m.cycle }

// AutofireActive reports the current autofire phase.
func (m *Mapper) AutofireActive() bool { return m.phase }

// Update advances the autofire clock by elapsedMillis and maps b.
//
// The phase flips once per full cycle elapsed, so a large step can flip it
// several times and still leaves the accumulated time below the cycle. The
// cost does not depend on the step size.
func (m *Mapper) Update(b snes.Buttons, elapsedMillis uint16) db9.Outputs {
	if m.cycle == 0 {
		m.acc = 0
		m.phase = false
	} else {
		c := uint32(m.cycle)
		m.acc += uint32(elapsedMillis)
		if m.acc >= c {
			if (m.acc/c)%2 == 1 {
				m.phase = !m.phase
			}
			m.acc %= c
		}
	}

	var o db9.Outputs
	if b.Has(snes.ButtonUp) {
		o |= db9.Up
	}
	if b.Has(snes.ButtonDown) {
		o |= db9.Down
	}
	if b.Has(snes.ButtonLeft) {
		o |= db9.Left
	}
	if b.Has(snes.ButtonRight) {
		o |= db9.Right
	}
	if b.Has(m.masks.Fire) || (b.Has(m.masks.Autofire) && m.phase) {
		o |= db9.Fire
	}
	if b.Has(m.masks.Jump) {
		o |= db9.Up
	}
	return o
}
