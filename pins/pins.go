// Package pins is the logical pin layer between the converter core and the
// hardware. The core only ever talks to a Driver; Board maps the logical pins
// onto hal.GPIO.
package pins

// Pin identifies one logical pin of the converter.
type Pin uint8

const (
	Latch Pin = iota
	Clock
	Data
	Up
	Down
	Left
	Right
	Fire

	// Count is the number of logical pins.
	Count = int(Fire) + 1
)

var pinNames = [Count]string{
	Latch: "SNES_LATCH",
	Clock: "SNES_CLK",
	Data:  "SNES_DATA",
	Up:    "DB9_UP",
	Down:  "DB9_DOWN",
	Left:  "DB9_LEFT",
	Right: "DB9_RIGHT",
	Fire:  "DB9_FIRE",
}

// String returns the pin's board name, which is also the name Board looks up
// in hal.GPIO.
func (p Pin) String() string {
	if int(p) < Count {
		return pinNames[p]
	}
	return "PIN?"
}

// Level is an electrical pin state.
type Level uint8

const (
	Low Level = iota
	High
	// HighZ releases the pin: the driver neither sources nor sinks current.
	HighZ
)

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case High:
		return "H"
	case HighZ:
		return "Z"
	default:
		return "?"
	}
}

// Setter drives pins.
type Setter interface {
	SetPin(p Pin, l Level)
}

// Getter samples pins. Implementations return Low or High only.
type Getter interface {
	ReadPin(p Pin) Level
}

// Driver is the full pin capability the protocol reader needs.
type Driver interface {
	Setter
	Getter
}

// Levels is a snapshot of every logical pin.
type Levels [Count]Level
