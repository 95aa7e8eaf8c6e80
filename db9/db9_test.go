package db9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snes2db9/pins"
)

type recorder struct {
	order  []pins.Pin
	levels map[pins.Pin]pins.Level
}

func newRecorder() *recorder {
	return &recorder{levels: map[pins.Pin]pins.Level{}}
}

func (r *recorder) SetPin(p pins.Pin, l pins.Level) {
	r.order = append(r.order, p)
	r.levels[p] = l
}

func TestSetOutputsUpFire(t *testing.T) {
	r := newRecorder()
	SetOutputs(Up|Fire, r)

	assert.Equal(t, []pins.Pin{pins.Up, pins.Down, pins.Left, pins.Right, pins.Fire}, r.order)
	assert.Equal(t, pins.Low, r.levels[pins.Up])
	assert.Equal(t, pins.Low, r.levels[pins.Fire])
	assert.Equal(t, pins.High, r.levels[pins.Down])
	assert.Equal(t, pins.High, r.levels[pins.Left])
	assert.Equal(t, pins.High, r.levels[pins.Right])
}

func TestSetOutputsEveryMask(t *testing.T) {
	for m := 0; m < 256; m++ {
		o := Outputs(m)
		r := newRecorder()
		SetOutputs(o, r)
		require.Len(t, r.order, 5)
		for _, l := range lines {
			want := pins.High
			if o&l.bit != 0 {
				want = pins.Low
			}
			assert.Equal(t, want, r.levels[l.pin], "mask %#02x pin %v", m, l.pin)
		}
	}
}

func TestOpenDrainReleasesInactive(t *testing.T) {
	r := newRecorder()
	NewDriver(r, true).Set(Left)

	assert.Equal(t, pins.Low, r.levels[pins.Left])
	for _, p := range []pins.Pin{pins.Up, pins.Down, pins.Right, pins.Fire} {
		assert.Equal(t, pins.HighZ, r.levels[p], p.String())
	}
}

func TestOutputsString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "UP+RIGHT+FIRE", (Up | Right | Fire).String())
}

func TestNewDriverNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewDriver(nil, false) })
}
