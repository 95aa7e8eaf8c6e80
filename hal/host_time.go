//go:build !tinygo

package hal

import (
	"errors"
	"sync"
	"time"
)

// hostTimer is a virtual interrupt source. The host runners decide when a
// period has elapsed and call the ISR followed by one main-loop step, so the
// simulated firmware never loses a tick to goroutine scheduling.
type hostTimer struct {
	mu     sync.Mutex
	period time.Duration
	isr    func()

	last time.Time
	acc  time.Duration
}

func (t *hostTimer) Start(period time.Duration, isr func()) error {
	if period <= 0 {
		return errors.New("timer: period must be positive")
	}
	if isr == nil {
		return errors.New("timer: nil isr")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.period = period
	t.isr = isr
	t.last = time.Time{}
	t.acc = 0
	return nil
}

func (t *hostTimer) started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isr != nil
}

// due returns how many periods have elapsed since the previous call.
func (t *hostTimer) due(now time.Time) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isr == nil {
		return 0
	}
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		return 1
	}

	t.acc += now.Sub(t.last)
	t.last = now
	if t.acc < 0 {
		t.acc = 0
	}
	n := uint64(t.acc / t.period)
	t.acc = t.acc % t.period
	return n
}

func (t *hostTimer) fire() {
	t.mu.Lock()
	isr := t.isr
	t.mu.Unlock()
	if isr != nil {
		isr()
	}
}

// run delivers n ticks, each followed by one step.
func (t *hostTimer) run(n uint64, step func() error) error {
	for i := uint64(0); i < n; i++ {
		t.fire()
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
	}
	return nil
}

var timeNow = time.Now
