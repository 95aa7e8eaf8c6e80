//go:build !tinygo

// Package statsview serves live runtime charts of the host simulator.
//
// After Launch, graphs are at http://ADDR/debug/statsview and the standard
// pprof pages at http://ADDR/debug/pprof/.
package statsview

import (
	"fmt"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"snes2db9/hal"
)

// DefaultAddress is used when Launch gets an empty address.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the viewer in a new goroutine and returns its URL.
func Launch(addr string, log hal.Logger) string {
	if addr == "" {
		addr = DefaultAddress
	}
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	url := fmt.Sprintf("http://%s%s", addr, path)
	if log != nil {
		log.WriteLineString("statsview: " + url)
	}
	return url
}
