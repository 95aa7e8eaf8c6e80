package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snes2db9/db9"
	"snes2db9/snes"
)

var defaultMasks = ButtonMasks{
	Fire:     snes.ButtonB,
	Jump:     snes.ButtonA,
	Autofire: snes.ButtonY,
}

func TestAutofireToggles(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(20)

	var got []bool
	for i := 0; i < 59; i++ {
		o := m.Update(snes.ButtonY, 1)
		got = append(got, o&db9.Fire != 0)
	}
	for i, fire := range got {
		switch {
		case i < 19:
			assert.False(t, fire, "call %d", i+1)
		case i < 39:
			assert.True(t, fire, "call %d", i+1)
		default:
			assert.False(t, fire, "call %d", i+1)
		}
	}
}

func TestAutofireLargeStepKeepsRemainder(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(10)

	m.Update(snes.ButtonNone, 35)
	assert.True(t, m.AutofireActive(), "three flips")
	assert.Equal(t, uint32(5), m.acc)

	m.Update(snes.ButtonNone, 5)
	assert.False(t, m.AutofireActive())
	assert.Zero(t, m.acc)
}

func TestAutofireRequiresHeldButton(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(16)
	m.Update(snes.ButtonNone, 16)
	require.True(t, m.AutofireActive())

	assert.Equal(t, db9.None, m.Update(snes.ButtonNone, 1))
	assert.Equal(t, db9.Fire, m.Update(snes.ButtonY, 1))
}

func TestCycleZeroIsPure(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(0)

	for w := 0; w <= 0xFFFF; w += 0x10 {
		b := snes.Buttons(w)
		first := m.Update(b, 16)
		for i := 0; i < 4; i++ {
			require.Equal(t, first, m.Update(b, 16), "word %#04x", w)
		}
		assert.False(t, m.AutofireActive())
	}
}

func TestCycleZeroClearsPhase(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(4)
	m.Update(snes.ButtonNone, 4)
	require.True(t, m.AutofireActive())

	m.SetAutofireCycle(0)
	assert.Equal(t, db9.None, m.Update(snes.ButtonY, 16))
	assert.False(t, m.AutofireActive())
}

func TestReenableAfterLongDisabledPeriod(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(0)
	for i := 0; i < 100000; i++ {
		m.Update(snes.ButtonY, 16)
	}
	assert.Zero(t, m.acc)

	m.SetAutofireCycle(20)
	m.Update(snes.ButtonY, 19)
	assert.False(t, m.AutofireActive(), "no time carried over from the disabled period")
	m.Update(snes.ButtonY, 1)
	assert.True(t, m.AutofireActive())
}

func TestSetAutofireCycleKeepsRemainder(t *testing.T) {
	m := New(defaultMasks)
	m.SetAutofireCycle(100)
	m.Update(snes.ButtonNone, 95)
	require.False(t, m.AutofireActive())

	m.SetAutofireCycle(10)
	assert.Equal(t, uint32(5), m.acc)
	m.Update(snes.ButtonNone, 5)
	assert.True(t, m.AutofireActive())
}

func TestLargeStepMatchesUnitSteps(t *testing.T) {
	for _, cycle := range []uint16{1, 3, 7, 16} {
		big, small := New(defaultMasks), New(defaultMasks)
		big.SetAutofireCycle(cycle)
		small.SetAutofireCycle(cycle)
		for _, step := range []uint16{0, 1, 5, 16, 1000, 65535} {
			big.Update(snes.ButtonNone, step)
			for i := uint16(0); i < step; i++ {
				small.Update(snes.ButtonNone, 1)
			}
			require.Equal(t, small.AutofireActive(), big.AutofireActive(), "cycle %d step %d", cycle, step)
			require.Equal(t, small.acc, big.acc, "cycle %d step %d", cycle, step)
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   snes.Buttons
		want db9.Outputs
	}{
		{"fire with diagonal", snes.ButtonUp | snes.ButtonRight | snes.ButtonB, db9.Up | db9.Right | db9.Fire},
		{"jump", snes.ButtonA, db9.Up},
		{"jump with up", snes.ButtonA | snes.ButtonUp, db9.Up},
		{"dpad", snes.ButtonsDPad, db9.Up | db9.Down | db9.Left | db9.Right},
		{"unmapped", snes.ButtonX | snes.ButtonL | snes.ButtonR | snes.ButtonStart | snes.ButtonSelect, db9.None},
		{"autofire phase off", snes.ButtonY, db9.None},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(defaultMasks)
			assert.Equal(t, tc.want, m.Update(tc.in, 0))
		})
	}
}

func TestNewCopiesMasks(t *testing.T) {
	masks := defaultMasks
	m := New(masks)
	masks.Fire = snes.ButtonX

	assert.Equal(t, defaultMasks, m.Masks())
	assert.Equal(t, DefaultAutofireCycle, m.AutofireCycle())
	assert.Equal(t, db9.None, m.Update(snes.ButtonX, 0))
}
