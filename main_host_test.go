//go:build !tinygo

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snes2db9/app"
	"snes2db9/mapper"
	"snes2db9/snes"
)

func defaultOptions() options {
	return options{
		fire:           "B",
		jump:           "A",
		autofire:       "Y",
		autofireMillis: uint(mapper.DefaultAutofireCycle),
		startupMillis:  app.DefaultStartupDelayMillis,
	}
}

func TestOptionsConfigDefaults(t *testing.T) {
	cfg, err := defaultOptions().config()
	require.NoError(t, err)
	assert.Equal(t, app.DefaultConfig().Masks, cfg.Masks)
	assert.Equal(t, mapper.DefaultAutofireCycle, cfg.AutofireCycleMillis)
	assert.Equal(t, uint32(app.DefaultStartupDelayMillis), cfg.StartupDelayMillis)
}

func TestOptionsConfigRanges(t *testing.T) {
	o := defaultOptions()
	o.autofireMillis = 1 << 16
	_, err := o.config()
	assert.ErrorContains(t, err, "-autofire-ms")

	o = defaultOptions()
	o.startupMillis = 1<<32 - 1
	cfg, err := o.config()
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<32-1), cfg.StartupDelayMillis)

	if over := uint64(1) << 32; uint64(^uint(0)) >= over {
		o.startupMillis = uint(over)
		_, err = o.config()
		assert.ErrorContains(t, err, "-startup-ms")
	}
}

func TestOptionsConfigBadButtons(t *testing.T) {
	o := defaultOptions()
	o.jump = "A+Z"
	_, err := o.config()
	assert.ErrorContains(t, err, "-jump")

	o = defaultOptions()
	o.fire = "x+l"
	cfg, err := o.config()
	require.NoError(t, err)
	assert.Equal(t, snes.ButtonX|snes.ButtonL, cfg.Masks.Fire)
}
