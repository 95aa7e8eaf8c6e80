package pins

// Tracker wraps a Driver and remembers the last level seen on every pin.
// It is not safe for concurrent use; it lives on the main loop.
type Tracker struct {
	d      Driver
	levels Levels
	reads  uint64
}

// NewTracker returns a Tracker around d. All pins start released.
func NewTracker(d Driver) *Tracker {
	t := &Tracker{d: d}
	for i := range t.levels {
		t.levels[i] = HighZ
	}
	return t
}

func (t *Tracker) SetPin(p Pin, l Level) {
	t.d.SetPin(p, l)
	if int(p) < Count {
		t.levels[p] = l
	}
}

func (t *Tracker) ReadPin(p Pin) Level {
	l := t.d.ReadPin(p)
	if int(p) < Count {
		t.levels[p] = l
	}
	t.reads++
	return l
}

// Levels returns the last known level of every pin.
func (t *Tracker) Levels() Levels { return t.levels }

// Reads returns the number of ReadPin calls made through t.
func (t *Tracker) Reads() uint64 { return t.reads }
