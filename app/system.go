// Package app wires the converter together: pins, protocol reader, mapper
// and joystick driver, paced by the tick scheduler.
package app

import (
	"fmt"
	"sync"

	"snes2db9/db9"
	"snes2db9/hal"
	"snes2db9/internal/buildinfo"
	"snes2db9/kernel"
	"snes2db9/mapper"
	"snes2db9/pins"
	"snes2db9/snes"
)

// Status is a snapshot of the converter, taken at the end of the last output
// task.
type Status struct {
	Buttons    snes.Buttons
	Outputs    db9.Outputs
	Autofire   bool
	Suppressed bool
	ReadCycles uint64
	Sched      kernel.Stats
	Pins       pins.Levels
	Err        string
}

// System is one running converter.
type System struct {
	cfg    Config
	log    hal.Logger
	led    hal.LED
	board  *pins.Board
	pins   *pins.Tracker
	reader *snes.Reader
	mapper *mapper.Mapper
	out    *db9.Driver
	sched  *kernel.Scheduler
	screen *screen

	startupMillis uint32
	lastOutputs   db9.Outputs
	lastButtons   snes.Buttons
	ledOn         bool
	errLogged     bool
	renderDue     bool

	mu     sync.Mutex
	status Status
}

// NewWithConfig builds the converter on h and starts h's timer. The first
// task runs on the first Step after a tick.
func NewWithConfig(h hal.HAL, cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	board, err := pins.NewBoard(h.GPIO())
	if err != nil {
		return nil, err
	}

	s := &System{
		cfg:    cfg,
		log:    h.Logger(),
		led:    h.LED(),
		board:  board,
		pins:   pins.NewTracker(board),
		mapper: mapper.New(cfg.Masks),
		screen: newScreen(h.Display()),
	}
	s.mapper.SetAutofireCycle(cfg.AutofireCycleMillis)

	s.reader = snes.New(s.pins)
	if cfg.DataActiveHigh {
		s.reader.SetDataActiveLevel(pins.High)
	}

	s.out = db9.NewDriver(s.pins, cfg.OpenDrain)
	s.out.Set(db9.None)
	if s.led != nil {
		s.led.Low()
	}

	s.sched = kernel.New(cfg.Scheduler, s.readerTask, s.outputTask)
	s.publish(snes.ButtonNone, db9.None, cfg.StartupDelayMillis > 0)

	s.logf("snes2db9 %s: fire=%s jump=%s autofire=%s cycle=%dms startup=%dms",
		buildinfo.Short(), cfg.Masks.Fire, cfg.Masks.Jump, cfg.Masks.Autofire,
		cfg.AutofireCycleMillis, cfg.StartupDelayMillis)

	t := h.Timer()
	if t == nil {
		return nil, fmt.Errorf("app: no timer: %w", hal.ErrNotImplemented)
	}
	if err := t.Start(cfg.Scheduler.TickPeriod, s.sched.Tick); err != nil {
		return nil, fmt.Errorf("app: start timer: %w", err)
	}
	return s, nil
}

// Step is one pass of the main loop: run due tasks, then redraw the screen if
// a redraw is due. It reports whether a task ran.
func (s *System) Step() bool {
	ran := s.sched.Poll()
	if s.renderDue && s.screen != nil {
		s.renderDue = false
		s.screen.render(s.Status())
	}
	return ran
}

// Scheduler returns the scheduler driving s.
func (s *System) Scheduler() *kernel.Scheduler { return s.sched }

// Status returns the latest snapshot. It is safe to call from any goroutine.
func (s *System) Status() Status {
	s.mu.Lock()
	st := s.status
	s.mu.Unlock()
	st.Sched = s.sched.Stats()
	return st
}

func (s *System) readerTask() {
	s.reader.Advance()
	if s.cfg.Probe != nil {
		s.cfg.Probe.Sample(s.pins.Levels())
	}
}

func (s *System) outputTask() {
	elapsed := s.cfg.Scheduler.CoarseMillis()
	buttons := s.reader.Result()

	var o db9.Outputs
	suppressed := s.startupMillis < s.cfg.StartupDelayMillis
	if suppressed {
		s.startupMillis += uint32(elapsed)
		if s.startupMillis >= s.cfg.StartupDelayMillis {
			s.logf("app: outputs enabled after %dms", s.startupMillis)
		}
	} else {
		o = s.mapper.Update(buttons, elapsed)
	}

	s.out.Set(o)
	s.reader.BeginRead()

	if on := o != db9.None; on != s.ledOn && s.led != nil {
		if on {
			s.led.High()
		} else {
			s.led.Low()
		}
		s.ledOn = on
	}

	if buttons != s.lastButtons || o != s.lastOutputs {
		s.lastButtons, s.lastOutputs = buttons, o
		if s.screen != nil {
			s.screen.logLine(fmt.Sprintf("pad %s -> joy %s", buttons, o))
		}
	}

	if !s.errLogged {
		if err := s.board.Err(); err != nil {
			s.errLogged = true
			s.logf("app: %v", err)
		}
	}

	s.publish(buttons, o, suppressed)
	if s.sched.Stats().CoarseRuns%renderEveryNth == renderEveryNth-1 {
		s.renderDue = true
	}
}

func (s *System) publish(b snes.Buttons, o db9.Outputs, suppressed bool) {
	st := Status{
		Buttons:    b,
		Outputs:    o,
		Autofire:   s.mapper.AutofireActive(),
		Suppressed: suppressed,
		ReadCycles: s.reader.Cycles(),
		Pins:       s.pins.Levels(),
	}
	if s.errLogged {
		st.Err = s.board.Err().Error()
	}
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *System) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if s.log != nil {
		s.log.WriteLineString(line)
	}
	if s.screen != nil {
		s.screen.logLine(line)
	}
}
