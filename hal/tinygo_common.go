//go:build tinygo && baremetal

package hal

import (
	"device/arm"
	"errors"
	"machine"
	"time"
)

// sysTickISR is called from SysTick_Handler. It is set once before the
// SysTick interrupt is enabled and never changes afterwards.
var sysTickISR func()

//export SysTick_Handler
func sysTickHandler() {
	if isr := sysTickISR; isr != nil {
		isr()
	}
}

type sysTickTimer struct{}

func (t *sysTickTimer) Start(period time.Duration, isr func()) error {
	if period <= 0 {
		return errors.New("timer: period must be positive")
	}
	if isr == nil {
		return errors.New("timer: nil isr")
	}
	hz := uint64(time.Second / period)
	if hz == 0 {
		return errors.New("timer: period too long")
	}
	reload := uint64(machine.CPUFrequency()) / hz
	if reload == 0 || reload > 0xFFFFFF {
		return errors.New("timer: period out of SysTick range")
	}
	sysTickISR = isr
	return arm.SetupSystemTimer(uint32(reload))
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin adapts machine.Pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	caps GPIOCaps
}

func newMachinePin(name string, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{name: name, pin: pin, caps: caps}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinOutput}
	if mode == GPIOModeInput {
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	}
	p.pin.Configure(cfg)
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}
