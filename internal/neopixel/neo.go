package neopixel

import (
	"errors"
	"sync"

	"github.com/callebjorkell/ledstrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

const (
	defaultBrightness = 255
	defaultLedCount   = 60
	defaultGpioPin    = 18
)

var ErrClosed = errors.New("strip is closed")

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

type Options struct {
	LedCount   int
	Brightness int
	GpioPin    int
	StripType  string
}

func (o Options) withDefaults() Options {
	if o.LedCount <= 0 {
		o.LedCount = defaultLedCount
	}
	if o.Brightness <= 0 || o.Brightness > 255 {
		o.Brightness = defaultBrightness
	}
	if o.GpioPin <= 0 {
		o.GpioPin = defaultGpioPin
	}
	return o
}

// LedController owns the strip. Frames from the control loop and the firmware update feedback both go through
// the queue, so an update in progress holds the strip until it is done.
type LedController struct {
	ws    wsEngine
	queue Queue

	holdLock sync.Mutex
	release  Unlocker
	// lastProgress avoids redrawing the gauge for every received chunk.
	lastProgress int

	// drawLock guards the driver and closed, as Close may release a hold that feedback is still drawing under.
	drawLock sync.Mutex
	closed   bool
}

func (l *LedController) Show(colors []pixel.Color) error {
	done := l.queue.Queue()
	defer done()

	return l.show(colors)
}

func (l *LedController) show(colors []pixel.Color) error {
	return l.draw(func(leds []uint32) {
		for i := 0; i < len(leds) && i < len(colors); i++ {
			leds[i] = uint32(colors[i])
		}
	})
}

func (l *LedController) setColor(c pixel.Color) error {
	return l.draw(func(leds []uint32) {
		for i := range leds {
			leds[i] = uint32(c)
		}
	})
}

func (l *LedController) draw(fill func(leds []uint32)) error {
	l.drawLock.Lock()
	defer l.drawLock.Unlock()

	if l.closed {
		return ErrClosed
	}
	fill(l.ws.Leds(0))
	return l.ws.Render()
}

func (l *LedController) ledCount() int {
	l.drawLock.Lock()
	defer l.drawLock.Unlock()

	if l.closed {
		return 0
	}
	return len(l.ws.Leds(0))
}

// Close turns the strip off and releases the driver. Anything shown afterwards fails with ErrClosed.
func (l *LedController) Close() {
	l.unhold()
	done := l.queue.Queue()
	defer done()

	l.drawLock.Lock()
	defer l.drawLock.Unlock()

	if l.closed {
		return
	}
	leds := l.ws.Leds(0)
	for i := range leds {
		leds[i] = 0
	}
	if err := l.ws.Render(); err != nil {
		log.Warn("Unable to clear the strip: ", err)
	}
	l.ws.Fini()
	l.closed = true
}
