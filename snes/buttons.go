package snes

import (
	"fmt"
	"strings"
)

// Buttons is a controller word as assembled by Reader: one bit per button,
// set while the button is pressed. The first bit on the wire (B) lands in
// bit 15.
type Buttons uint16

// Button definitions, in wire order.
const (
	ButtonB      Buttons = 0x8000
	ButtonY      Buttons = 0x4000
	ButtonSelect Buttons = 0x2000
	ButtonStart  Buttons = 0x1000
	ButtonUp     Buttons = 0x0800
	ButtonDown   Buttons = 0x0400
	ButtonLeft   Buttons = 0x0200
	ButtonRight  Buttons = 0x0100
	ButtonA      Buttons = 0x0080
	ButtonX      Buttons = 0x0040
	ButtonL      Buttons = 0x0020
	ButtonR      Buttons = 0x0010

	// ButtonNone is the empty mask.
	ButtonNone Buttons = 0

	// ButtonsDPad covers the four directions.
	ButtonsDPad = ButtonUp | ButtonDown | ButtonLeft | ButtonRight
	// ButtonsAll covers the twelve real buttons; the low nibble is unused.
	ButtonsAll Buttons = 0xFFF0
)

var buttonNames = []struct {
	name string
	b    Buttons
}{
	{"B", ButtonB},
	{"Y", ButtonY},
	{"SELECT", ButtonSelect},
	{"START", ButtonStart},
	{"UP", ButtonUp},
	{"DOWN", ButtonDown},
	{"LEFT", ButtonLeft},
	{"RIGHT", ButtonRight},
	{"A", ButtonA},
	{"X", ButtonX},
	{"L", ButtonL},
	{"R", ButtonR},
}

// Has reports whether any button of mask is pressed.
func (b Buttons) Has(mask Buttons) bool { return b&mask != 0 }

// String lists the pressed buttons, e.g. "UP+B", or "none".
func (b Buttons) String() string {
	if b&ButtonsAll == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, bn := range buttonNames {
		if b&bn.b == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(bn.name)
	}
	return sb.String()
}

// ButtonNames returns the twelve button names in wire order.
func ButtonNames() []string {
	names := make([]string, len(buttonNames))
	for i, bn := range buttonNames {
		names[i] = bn.name
	}
	return names
}

// ParseButtons parses a list of button names separated by '+', ',' or
// spaces. Names are case-insensitive; "none" and "" give ButtonNone.
func ParseButtons(s string) (Buttons, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ' ' || r == '|'
	})

	var out Buttons
	for _, f := range fields {
		name := strings.ToUpper(f)
		if name == "NONE" {
			continue
		}
		found := false
		for _, bn := range buttonNames {
			if bn.name == name {
				out |= bn.b
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("snes: unknown button %q", f)
		}
	}
	return out, nil
}
