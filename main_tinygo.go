//go:build tinygo && baremetal

package main

import (
	"snes2db9/app"
	"snes2db9/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
