package pins

import (
	"errors"
	"fmt"
	"sync"

	"snes2db9/hal"
)

// ErrMissingPin is returned when hal.GPIO has no pin for a logical pin.
var ErrMissingPin = errors.New("pins: missing pin")

// Board implements Driver on top of hal.GPIO.
//
// Every logical pin is resolved to a hal.GPIOPin once, in NewBoard. SetPin and
// ReadPin never fail: the first hardware error is kept and reported by Err.
type Board struct {
	pins  [Count]hal.GPIOPin
	modes [Count]pinMode

	mu  sync.Mutex
	err error
}

type pinMode uint8

const (
	modeUnset pinMode = iota
	modeInput
	modeOutput
)

// NewBoard resolves all logical pins by name and configures DATA as an input
// with pull-up. Output pins are configured lazily on their first write.
func NewBoard(g hal.GPIO) (*Board, error) {
	if g == nil {
		return nil, fmt.Errorf("pins: no gpio: %w", hal.ErrNotImplemented)
	}

	byName := make(map[string]hal.GPIOPin, g.PinCount())
	for i := 0; i < g.PinCount(); i++ {
		p := g.Pin(i)
		if p == nil {
			continue
		}
		byName[p.Name()] = p
	}

	b := &Board{}
	for i := 0; i < Count; i++ {
		name := Pin(i).String()
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPin, name)
		}
		b.pins[i] = p
	}

	pull := hal.GPIOPullNone
	if b.pins[Data].Caps()&hal.GPIOCapPullUp != 0 {
		pull = hal.GPIOPullUp
	}
	if err := b.pins[Data].Configure(hal.GPIOModeInput, pull); err != nil {
		return nil, fmt.Errorf("pins: configure %s: %w", Data, err)
	}
	b.modes[Data] = modeInput
	return b, nil
}

// SetPin drives p to l. HighZ switches the pin to input mode without pull.
func (b *Board) SetPin(p Pin, l Level) {
	if int(p) >= Count {
		return
	}
	gp := b.pins[p]

	if l == HighZ {
		if b.modes[p] != modeInput {
			if err := gp.Configure(hal.GPIOModeInput, hal.GPIOPullNone); err != nil {
				b.fail(fmt.Errorf("pins: release %s: %w", p, err))
				return
			}
			b.modes[p] = modeInput
		}
		return
	}

	if b.modes[p] != modeOutput {
		if err := gp.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			b.fail(fmt.Errorf("pins: configure %s: %w", p, err))
			return
		}
		b.modes[p] = modeOutput
	}
	if err := gp.Write(l == High); err != nil {
		b.fail(fmt.Errorf("pins: write %s: %w", p, err))
	}
}

// ReadPin samples p. A failed read reports High, the idle level of an input
// with pull-up.
func (b *Board) ReadPin(p Pin) Level {
	if int(p) >= Count {
		return High
	}
	v, err := b.pins[p].Read()
	if err != nil {
		b.fail(fmt.Errorf("pins: read %s: %w", p, err))
		return High
	}
	if v {
		return High
	}
	return Low
}

// Err returns the first hardware error seen, if any.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Board) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = err
	}
}
