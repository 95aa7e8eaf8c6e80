// Package kernel turns one periodic timer interrupt into two cooperatively
// scheduled tasks: a fine task on every tick and a coarse task every N ticks.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// Default periods.
const (
	DefaultTickPeriod   = 200 * time.Microsecond
	DefaultCoarsePeriod = 16 * time.Millisecond
)

var ErrBadPeriod = errors.New("kernel: invalid scheduler period")

// Config sets the tick and coarse task periods.
type Config struct {
	TickPeriod   time.Duration
	CoarsePeriod time.Duration
}

// DefaultConfig returns 200µs ticks and a 16ms coarse task.
func DefaultConfig() Config {
	return Config{TickPeriod: DefaultTickPeriod, CoarsePeriod: DefaultCoarsePeriod}
}

// Validate checks that both periods are positive, that the coarse period
// spans at least one tick, and that N and the coarse period in milliseconds
// fit the counters that carry them.
func (c Config) Validate() error {
	if c.TickPeriod <= 0 || c.CoarsePeriod <= 0 {
		return fmt.Errorf("%w: tick %v coarse %v", ErrBadPeriod, c.TickPeriod, c.CoarsePeriod)
	}
	if c.CoarsePeriod < c.TickPeriod {
		return fmt.Errorf("%w: coarse %v shorter than tick %v", ErrBadPeriod, c.CoarsePeriod, c.TickPeriod)
	}
	if c.CoarsePeriod/c.TickPeriod > math.MaxUint32 {
		return fmt.Errorf("%w: coarse %v spans more than %d ticks", ErrBadPeriod, c.CoarsePeriod, uint32(math.MaxUint32))
	}
	if c.CoarsePeriod/time.Millisecond > math.MaxUint16 {
		return fmt.Errorf("%w: coarse %v longer than %dms", ErrBadPeriod, c.CoarsePeriod, math.MaxUint16)
	}
	return nil
}

// CoarseEvery returns N, the number of ticks per coarse period. A coarse
// period that is not a whole multiple of the tick rounds down.
func (c Config) CoarseEvery() uint32 {
	if c.TickPeriod <= 0 {
		return 0
	}
	return uint32(c.CoarsePeriod / c.TickPeriod)
}

// CoarseMillis returns the coarse period in whole milliseconds, the elapsed
// time the coarse task reports per run.
func (c Config) CoarseMillis() uint16 {
	return uint16(c.CoarsePeriod / time.Millisecond)
}

// Stats is a diagnostic snapshot of the scheduler.
type Stats struct {
	Ticks        uint64
	FineRuns     uint64
	CoarseRuns   uint64
	FineMissed   uint64
	CoarseMissed uint64
}

// Scheduler dispatches the fine and coarse tasks.
//
// Tick runs in interrupt context; Poll and Run belong to the main loop.
// Stats may be called from anywhere.
type Scheduler struct {
	cfg    Config
	n      uint32
	fine   func()
	coarse func()

	flags       TaskFlags
	coarseTicks uint32 // touched by Tick only

	ticks        atomic.Uint64
	fineRuns     atomic.Uint64
	coarseRuns   atomic.Uint64
	fineMissed   atomic.Uint64
	coarseMissed atomic.Uint64
}

// New returns a Scheduler for cfg. It panics on an invalid config or a nil
// task: both are wiring mistakes, not runtime conditions.
func New(cfg Config, fine, coarse func()) *Scheduler {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	if fine == nil || coarse == nil {
		panic("kernel: nil task")
	}
	return &Scheduler{
		cfg:    cfg,
		n:      cfg.CoarseEvery(),
		fine:   fine,
		coarse: coarse,
	}
}

// Config returns the scheduler's periods.
func (s *Scheduler) Config() Config { return s.cfg }

// Tick records one timer period. It does no task work and must stay short;
// it is called from the timer interrupt.
func (s *Scheduler) Tick() {
	s.ticks.Add(1)
	s.flags.raiseFine()
	s.coarseTicks++
	if s.coarseTicks >= s.n {
		s.coarseTicks = 0
		s.flags.raiseCoarse()
	}
}

// Poll runs each task whose flag is raised, fine first, and reports whether
// anything ran. A flag is cleared after its task returns.
func (s *Scheduler) Poll() bool {
	ran := false
	if f, _ := s.flags.Pending(); f != 0 {
		s.fine()
		s.fineRuns.Add(1)
		if n := s.flags.takeFine(); n > 1 {
			s.fineMissed.Add(uint64(n - 1))
		}
		ran = true
	}
	if _, c := s.flags.Pending(); c != 0 {
		s.coarse()
		s.coarseRuns.Add(1)
		if n := s.flags.takeCoarse(); n > 1 {
			s.coarseMissed.Add(uint64(n - 1))
		}
		ran = true
	}
	return ran
}

// Run polls until ctx is done, yielding between empty passes.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !s.Poll() {
			runtime.Gosched()
		}
	}
}

// Stats returns the current counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Ticks:        s.ticks.Load(),
		FineRuns:     s.fineRuns.Load(),
		CoarseRuns:   s.coarseRuns.Load(),
		FineMissed:   s.fineMissed.Load(),
		CoarseMissed: s.coarseMissed.Load(),
	}
}

// Missed returns the total number of ticks whose task run was merged into a
// later one.
func (s *Scheduler) Missed() uint64 {
	return s.fineMissed.Load() + s.coarseMissed.Load()
}
