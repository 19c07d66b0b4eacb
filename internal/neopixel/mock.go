//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors  []uint32
	renders int
}

func (d *mockEngine) Init() error {
	return nil
}

func (d *mockEngine) Render() error {
	d.renders++
	log.Tracef("neopixel: render %d: %06x", d.renders, d.colors)
	return nil
}

func (d *mockEngine) Wait() error {
	return nil
}

func (d *mockEngine) Fini() {
	log.Debug("neopixel: Fini")
}

func (d *mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

func NewLedController(opts Options) (*LedController, error) {
	opts = opts.withDefaults()
	log.Infof("Using a mock strip with %d LEDs", opts.LedCount)

	return &LedController{
		ws: &mockEngine{
			colors: make([]uint32, opts.LedCount),
		},
	}, nil
}
