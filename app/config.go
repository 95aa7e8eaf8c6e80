package app

import (
	"fmt"

	"snes2db9/kernel"
	"snes2db9/mapper"
	"snes2db9/pins"
	"snes2db9/snes"
)

// DefaultStartupDelayMillis keeps the joystick lines quiet after power-up
// while the pad settles.
const DefaultStartupDelayMillis = 3000

// Probe observes the pins after every reader step. It runs on the main loop
// and must not block.
type Probe interface {
	Sample(levels pins.Levels)
}

// Config is the converter configuration.
type Config struct {
	Masks mapper.ButtonMasks
	// AutofireCycleMillis is the autofire half-period; 0 disables autofire.
	AutofireCycleMillis uint16
	// StartupDelayMillis forces all outputs off for this long after start;
	// 0 disables suppression.
	StartupDelayMillis uint32
	// DataActiveHigh reads a high DATA level as a pressed button.
	DataActiveHigh bool
	// OpenDrain releases inactive joystick lines instead of driving them high.
	OpenDrain bool
	Scheduler kernel.Config

	Probe Probe
}

// DefaultConfig maps B to fire, A to jump and Y to autofire.
func DefaultConfig() Config {
	return Config{
		Masks: mapper.ButtonMasks{
			Fire:     snes.ButtonB,
			Jump:     snes.ButtonA,
			Autofire: snes.ButtonY,
		},
		AutofireCycleMillis: mapper.DefaultAutofireCycle,
		StartupDelayMillis:  DefaultStartupDelayMillis,
		Scheduler:           kernel.DefaultConfig(),
	}
}

// Validate reports configuration errors before anything touches the pins.
func (c Config) Validate() error {
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if c.Scheduler.CoarseMillis() == 0 {
		return fmt.Errorf("app: coarse period %v is below 1ms", c.Scheduler.CoarsePeriod)
	}
	return nil
}
