package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snes2db9/pins"
)

type pinWrite struct {
	pin   pins.Pin
	level pins.Level
}

// fakePad records pin writes and shifts out pattern MSB first, one bit per
// DATA read.
type fakePad struct {
	writes  []pinWrite
	levels  pins.Levels
	pattern uint16
	active  pins.Level
	reads   int
}

func newFakePad(pattern uint16, active pins.Level) *fakePad {
	return &fakePad{pattern: pattern, active: active}
}

func (f *fakePad) SetPin(p pins.Pin, l pins.Level) {
	f.writes = append(f.writes, pinWrite{p, l})
	f.levels[p] = l
}

func (f *fakePad) ReadPin(p pins.Pin) pins.Level {
	if p != pins.Data {
		return pins.High
	}
	bit := 15 - f.reads
	f.reads++
	pressed := bit >= 0 && f.pattern&(1<<bit) != 0
	if pressed {
		return f.active
	}
	if f.active == pins.Low {
		return pins.High
	}
	return pins.Low
}

func TestNewSetsIdleLevels(t *testing.T) {
	pad := newFakePad(0, pins.Low)
	r := New(pad)

	assert.Equal(t, []pinWrite{{pins.Clock, pins.High}, {pins.Latch, pins.Low}}, pad.writes)
	assert.Equal(t, StateIdle, r.State())
	assert.True(t, r.Idle())
	assert.Equal(t, ButtonNone, r.Result())
}

func TestNewNilDriverPanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestRoundTrip(t *testing.T) {
	patterns := []uint16{0x0000, 0xFFFF, 0x8000, 0x0001, 0xA5C3, 0x1234, uint16(ButtonUp | ButtonRight | ButtonB)}
	for _, active := range []pins.Level{pins.Low, pins.High} {
		for _, p := range patterns {
			pad := newFakePad(p, active)
			r := New(pad)
			r.SetDataActiveLevel(active)

			r.BeginRead()
			var got Buttons
			for i := 0; i < 33; i++ {
				got = r.Advance()
			}
			assert.Equalf(t, Buttons(p), got, "pattern %#04x active %v", p, active)
			assert.Equal(t, 16, pad.reads)
			assert.Equal(t, StateIdle, r.State())
			assert.Equal(t, uint64(1), r.Cycles())
		}
	}
}

func TestResultOnlyChangesAtUpdate(t *testing.T) {
	pad := newFakePad(0xFFFF, pins.Low)
	r := New(pad)

	r.BeginRead()
	for i := 0; i < 32; i++ {
		require.Equal(t, ButtonNone, r.Advance(), "step %d", i)
	}
	assert.Equal(t, Buttons(0xFFFF), r.Advance())
}

func TestStatePinLevels(t *testing.T) {
	pad := newFakePad(0, pins.Low)
	r := New(pad)
	r.BeginRead()

	for state := 0; state <= 33; state++ {
		pad.writes = nil
		r.Advance()
		require.Len(t, pad.writes, 2, "state %d", state)
		assert.Equal(t, pins.Clock, pad.writes[0].pin, "state %d", state)
		assert.Equal(t, pins.Latch, pad.writes[1].pin, "state %d", state)

		wantClock, wantLatch := pins.High, pins.Low
		switch {
		case state == 0:
			wantLatch = pins.High
		case state < 32 && state%2 == 0:
			wantClock = pins.Low
		}
		assert.Equal(t, wantClock, pad.writes[0].level, "clock in state %d", state)
		assert.Equal(t, wantLatch, pad.writes[1].level, "latch in state %d", state)
	}
}

func TestIdleIsSticky(t *testing.T) {
	pad := newFakePad(0xA5A0, pins.Low)
	r := New(pad)
	r.BeginRead()
	for i := 0; i < 33; i++ {
		r.Advance()
	}
	result := r.Result()
	reads := pad.reads

	for i := 0; i < 100; i++ {
		assert.Equal(t, result, r.Advance())
		assert.Equal(t, StateIdle, r.State())
		assert.Equal(t, pins.High, pad.levels[pins.Clock])
		assert.Equal(t, pins.Low, pad.levels[pins.Latch])
	}
	assert.Equal(t, reads, pad.reads, "idle must not sample DATA")
}

func TestBeginReadRestartsMidCycle(t *testing.T) {
	pad := newFakePad(0xF0F0, pins.Low)
	r := New(pad)
	r.BeginRead()
	for i := 0; i < 10; i++ {
		r.Advance()
	}

	pad.reads = 0
	r.BeginRead()
	assert.Equal(t, StateLatch, r.State())
	for i := 0; i < 33; i++ {
		r.Advance()
	}
	assert.Equal(t, Buttons(0xF0F0), r.Result())
}

func TestSetDataActiveLevelRejectsHighZ(t *testing.T) {
	r := New(newFakePad(0, pins.Low))
	assert.Panics(t, func() { r.SetDataActiveLevel(pins.HighZ) })
	assert.Equal(t, pins.Low, r.DataActiveLevel())
}
