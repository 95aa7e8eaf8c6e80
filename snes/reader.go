// Package snes reads a SNES controller over its LATCH/CLK/DATA shift-register
// interface, one protocol step per call.
package snes

import "snes2db9/pins"

// Reader states. States 1..31 alternate between read (odd) and clock (even).
const (
	StateLatch  uint8 = 0
	StateUpdate uint8 = 32
	StateIdle   uint8 = 33
)

// DefaultDataActiveLevel is the DATA level of a pressed button. A stock SNES
// pad pulls DATA low while a button is held.
const DefaultDataActiveLevel = pins.Low

type cycleType uint8

const (
	cycleIdle cycleType = iota
	cycleLatch
	cycleClock
	cycleRead
	cycleUpdate
)

func cycleOf(state uint8) cycleType {
	switch {
	case state >= StateIdle:
		return cycleIdle
	case state == StateLatch:
		return cycleLatch
	case state == StateUpdate:
		return cycleUpdate
	case state%2 == 0:
		return cycleClock
	default:
		return cycleRead
	}
}

// Reader assembles a 16-bit controller word over 33 calls to Advance.
//
// It is not safe for concurrent use: it belongs to the task that paces it.
type Reader struct {
	pins   pins.Driver
	active pins.Level

	shift  uint16
	result Buttons
	state  uint8
	cycles uint64
}

// New returns an idle Reader and puts CLK and LATCH at their idle levels
// (high and low). It panics if d is nil.
func New(d pins.Driver) *Reader {
	if d == nil {
		panic("snes: nil pin driver")
	}
	r := &Reader{
		pins:   d,
		active: DefaultDataActiveLevel,
		state:  StateIdle,
	}
	d.SetPin(pins.Clock, pins.High)
	d.SetPin(pins.Latch, pins.Low)
	return r
}

// SetDataActiveLevel selects which DATA level counts as pressed. It panics on
// anything but Low or High.
func (r *Reader) SetDataActiveLevel(l pins.Level) {
	if l != pins.Low && l != pins.High {
		panic("snes: data active level must be Low or High")
	}
	r.active = l
}

// DataActiveLevel returns the DATA level that counts as pressed.
func (r *Reader) DataActiveLevel() pins.Level { return r.active }

// BeginRead restarts the read cycle at the latch pulse, also from idle.
func (r *Reader) BeginRead() {
	r.state = StateLatch
}

// Advance performs one protocol step and returns the last completed word.
//
// CLK then LATCH are written first in every state so each step costs the same
// before any bookkeeping. A read step samples DATA after the pin writes.
// Idle is sticky until BeginRead.
func (r *Reader) Advance() Buttons {
	switch cycleOf(r.state) {
	case cycleLatch:
		r.pins.SetPin(pins.Clock, pins.High)
		r.pins.SetPin(pins.Latch, pins.High)
		r.shift = 0
	case cycleClock:
		r.pins.SetPin(pins.Clock, pins.Low)
		r.pins.SetPin(pins.Latch, pins.Low)
		r.shift <<= 1
	case cycleUpdate:
		r.pins.SetPin(pins.Clock, pins.High)
		r.pins.SetPin(pins.Latch, pins.Low)
		r.result = Buttons(r.shift)
		r.cycles++
	default:
		r.pins.SetPin(pins.Clock, pins.High)
		r.pins.SetPin(pins.Latch, pins.Low)
	}

	if cycleOf(r.state) == cycleRead {
		if r.pins.ReadPin(pins.Data) == r.active {
			r.shift |= 1
		}
	}

	if r.state < StateIdle {
		r.state++
	}
	return r.result
}

// Result returns the last completed word.
func (r *Reader) Result() Buttons { return r.result }

// State returns the current protocol state, 0..33.
func (r *Reader) State() uint8 { return r.state }

// Idle reports whether the reader is resting in the idle state.
func (r *Reader) Idle() bool { return r.state == StateIdle }

// Cycles returns the number of completed read cycles.
func (r *Reader) Cycles() uint64 { return r.cycles }
