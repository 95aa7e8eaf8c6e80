//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	timer  *sysTickTimer
}

// New returns a Raspberry Pi Pico (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// SNES: LATCH GP2, CLK GP3, DATA GP4 (pull-up).
// DB9: UP GP10, DOWN GP11, LEFT GP12, RIGHT GP13, FIRE GP14.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	led := &pinLED{pin: ledPin}
	io := GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio: newVirtualGPIO([]GPIOPin{
			newLEDPin("LED", led),
			newMachinePin("SNES_LATCH", machine.GP2, io),
			newMachinePin("SNES_CLK", machine.GP3, io),
			newMachinePin("SNES_DATA", machine.GP4, GPIOCapInput|GPIOCapPullUp),
			newMachinePin("DB9_UP", machine.GP10, io),
			newMachinePin("DB9_DOWN", machine.GP11, io),
			newMachinePin("DB9_LEFT", machine.GP12, io),
			newMachinePin("DB9_RIGHT", machine.GP13, io),
			newMachinePin("DB9_FIRE", machine.GP14, io),
		}),
		timer: &sysTickTimer{},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Timer() Timer     { return h.timer }
func (h *tinyGoHAL) Display() Display { return nil }
