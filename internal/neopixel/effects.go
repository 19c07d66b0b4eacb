package neopixel

import (
	"time"

	"github.com/callebjorkell/ledstrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

const (
	green = pixel.Color(0x00ff00)
	red   = pixel.Color(0xff0000)
	blue  = pixel.Color(0x0000ff)

	flashTime = 200 * time.Millisecond
)

// hold takes the strip away from the control loop until unhold is called.
func (l *LedController) hold() {
	l.holdLock.Lock()
	defer l.holdLock.Unlock()

	if l.release == nil {
		log.Debugf("Holding the strip, %d waiting", l.queue.Waiting())
		l.release = l.queue.Queue()
	}
}

func (l *LedController) unhold() {
	l.holdLock.Lock()
	defer l.holdLock.Unlock()

	if l.release != nil {
		l.release()
		l.release = nil
	}
}

func (l *LedController) UpdateStarted() {
	l.hold()
	l.lastProgress = -1

	log.Info("Firmware update started")
	if err := l.setColor(green); err != nil {
		log.Warn("Unable to show update start: ", err)
	}
	<-time.After(flashTime)
}

// UpdateProgress shows a green/red gauge of how much of the update has been received.
func (l *LedController) UpdateProgress(percentage int) {
	if percentage == l.lastProgress {
		return
	}
	l.lastProgress = percentage
	log.Debugf("Firmware update at %d%%", percentage)

	b := pixel.NewBuffer(l.ledCount())
	pixel.FillPercentage(b, green, red, float64(percentage))
	if err := l.show(b.Colors()); err != nil {
		log.Warn("Unable to show update progress: ", err)
	}
}

// UpdateSucceeded leaves an alternating green and blue pattern on the strip. The strip stays held, as the
// process is about to restart.
func (l *LedController) UpdateSucceeded() {
	log.Info("Firmware update finished")

	b := pixel.NewBuffer(l.ledCount())
	for i := 0; i < b.Len(); i++ {
		if i%2 == 1 {
			b.Set(i, green)
		} else {
			b.Set(i, blue)
		}
	}
	if err := l.show(b.Colors()); err != nil {
		log.Warn("Unable to show update success: ", err)
	}
}

func (l *LedController) UpdateFailed(err error) {
	log.Warn("Firmware update failed: ", err)
	l.hold()
	defer l.unhold()

	if err := l.setColor(red); err != nil {
		log.Warn("Unable to show update failure: ", err)
	}
	<-time.After(flashTime)
}
