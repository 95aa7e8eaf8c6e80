//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"snes2db9/app"
	"snes2db9/hal"
	"snes2db9/internal/capture"
	"snes2db9/internal/remote"
	"snes2db9/internal/statsview"
	"snes2db9/mapper"
	"snes2db9/snes"
)

type options struct {
	headless hal.HeadlessConfig

	fire, jump, autofire string
	autofireMillis       uint
	startupMillis        uint
	dataActiveHigh       bool
	openDrain            bool

	capturePath string
	remoteAddr  string
	statsview   bool
	statsAddr   string
	termInput   bool
}

func parseFlags() options {
	var o options
	flag.BoolVar(&o.headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&o.headless.Hz, "hz", 1000, "Wake-ups per second in headless mode.")
	flag.Uint64Var(&o.headless.Ticks, "ticks", 0, "Stop after N timer ticks in headless mode (0 = run forever).")
	flag.BoolVar(&o.headless.Fast, "fast", false, "Headless: run ticks back to back instead of in real time.")

	flag.StringVar(&o.fire, "fire", "B", "Buttons mapped to fire.")
	flag.StringVar(&o.jump, "jump", "A", "Buttons mapped to up (jump).")
	flag.StringVar(&o.autofire, "autofire", "Y", "Buttons that fire repeatedly while held.")
	flag.UintVar(&o.autofireMillis, "autofire-ms", uint(mapper.DefaultAutofireCycle), "Autofire half-period in ms (0 = off).")
	flag.UintVar(&o.startupMillis, "startup-ms", app.DefaultStartupDelayMillis, "Hold outputs off for this long after start.")
	flag.BoolVar(&o.dataActiveHigh, "data-active-high", false, "Pad pulls DATA high for a pressed button.")
	flag.BoolVar(&o.openDrain, "open-drain", false, "Release idle joystick lines instead of driving them high.")

	flag.StringVar(&o.capturePath, "capture", "", "Record all pins to this WAV file.")
	flag.StringVar(&o.remoteAddr, "remote", "", "Serve the remote pad API on this address, e.g. localhost:50151.")
	flag.BoolVar(&o.statsview, "statsview", false, "Serve runtime charts.")
	flag.StringVar(&o.statsAddr, "statsview-addr", statsview.DefaultAddress, "Address for -statsview.")
	flag.BoolVar(&o.termInput, "term-input", false, "Headless: read pad keys from the terminal (i/j/k/l, z=B, x=A, a=Y, Q quits).")
	flag.Parse()
	return o
}

func (o options) config() (app.Config, error) {
	cfg := app.DefaultConfig()
	var err error
	if cfg.Masks.Fire, err = snes.ParseButtons(o.fire); err != nil {
		return cfg, fmt.Errorf("-fire: %w", err)
	}
	if cfg.Masks.Jump, err = snes.ParseButtons(o.jump); err != nil {
		return cfg, fmt.Errorf("-jump: %w", err)
	}
	if cfg.Masks.Autofire, err = snes.ParseButtons(o.autofire); err != nil {
		return cfg, fmt.Errorf("-autofire: %w", err)
	}
	if o.autofireMillis > math.MaxUint16 {
		return cfg, fmt.Errorf("-autofire-ms: %d out of range", o.autofireMillis)
	}
	cfg.AutofireCycleMillis = uint16(o.autofireMillis)
	if o.startupMillis > math.MaxUint32 {
		return cfg, fmt.Errorf("-startup-ms: %d out of range", o.startupMillis)
	}
	cfg.StartupDelayMillis = uint32(o.startupMillis)
	cfg.DataActiveHigh = o.dataActiveHigh
	cfg.OpenDrain = o.openDrain
	return cfg, nil
}

func main() {
	if err := run(parseFlags()); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}

	h := hal.NewHost(hal.HostConfig{
		Headless:      o.headless.Enabled,
		PadActiveHigh: o.dataActiveHigh,
	})

	if o.capturePath != "" {
		rate := int(time.Second / cfg.Scheduler.TickPeriod)
		rec, err := capture.Create(o.capturePath, rate)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			h.Logger().WriteLineString(fmt.Sprintf("capture: %d frames to %s", rec.Frames(), o.capturePath))
		}()
		cfg.Probe = rec
	}

	s, err := app.NewWithConfig(h, cfg)
	if err != nil {
		return err
	}
	step := func() error {
		s.Step()
		return nil
	}

	if o.statsview {
		statsview.Launch(o.statsAddr, h.Logger())
	}
	if o.remoteAddr != "" {
		srv := remote.NewServer(h.Pad(), s.Status, h.Logger())
		if err := srv.Start(o.remoteAddr); err != nil {
			return err
		}
		defer srv.Stop()
	}

	if !o.headless.Enabled {
		return hal.RunWindow(h, step)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if o.termInput {
		in, err := hal.OpenTerminalInput(h.Pad(), 0)
		if err != nil {
			return err
		}
		defer in.Close()

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			_ = in.Run(ctx)
			cancel()
		}()
	}

	return hal.RunHeadless(ctx, h, step, o.headless)
}
