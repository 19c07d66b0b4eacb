//go:build pi

package neopixel

import (
	"fmt"

	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

var stripTypes = map[string]int{
	"":     ws.WS2811StripGRB,
	"grb":  ws.WS2811StripGRB,
	"rgb":  ws.WS2811StripRGB,
	"grbw": ws.SK6812StripGRBW,
	"rgbw": ws.SK6812StripRGBW,
}

func NewLedController(opts Options) (*LedController, error) {
	opts = opts.withDefaults()

	stripType, ok := stripTypes[opts.StripType]
	if !ok {
		return nil, fmt.Errorf("unknown strip type %q", opts.StripType)
	}

	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = opts.Brightness
	opt.Channels[0].LedCount = opts.LedCount
	opt.Channels[0].GpioPin = opts.GpioPin
	opt.Channels[0].StripeType = stripType

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize the strip: %w", err)
	}
	log.Infof("Initialized a %d LED strip on GPIO%d", opts.LedCount, opts.GpioPin)

	return &LedController{
		ws: dev,
	}, nil
}
