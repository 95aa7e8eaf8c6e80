//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is how often the runner wakes up to catch up on elapsed timer periods.
	Hz int
	// Ticks stops the run after N timer periods (0 = run forever).
	Ticks uint64
	// Fast ignores the wall clock and delivers timer periods back to back.
	Fast bool
	// StepBudget caps the periods delivered per wake-up; the rest are dropped.
	StepBudget int
}

// ErrTimerNotStarted is returned when the firmware never started the timer.
var ErrTimerNotStarted = errors.New("hal: timer not started")

// RunHeadless drives h's timer without opening a window. step is one pass of
// the firmware main loop and runs after every timer period.
func RunHeadless(ctx context.Context, h *Host, step func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 1000
	}
	if !h.timer.started() {
		return ErrTimerNotStarted
	}

	if cfg.Fast {
		return runFast(ctx, h, step, cfg.Ticks)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = int(4 * d / h.timer.period)
		if cfg.StepBudget < 1 {
			cfg.StepBudget = 1
		}
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			n := h.timer.due(now)
			if n > uint64(cfg.StepBudget) {
				n = uint64(cfg.StepBudget)
			}
			if cfg.Ticks > 0 && tick+n > cfg.Ticks {
				n = cfg.Ticks - tick
			}
			if err := h.timer.run(n, step); err != nil {
				return err
			}
			tick += n
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func runFast(ctx context.Context, h *Host, step func() error, ticks uint64) error {
	const batch = 1024
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := uint64(batch)
		if ticks > 0 && tick+n > ticks {
			n = ticks - tick
		}
		if err := h.timer.run(n, step); err != nil {
			return err
		}
		tick += n
		if ticks > 0 && tick >= ticks {
			return nil
		}
	}
}
