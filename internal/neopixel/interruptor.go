package neopixel

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Queue is used for sharing the LEDs between the control loop and the firmware update feedback, where the
// feedback holds the strip for the whole transfer. Everyone wanting to render takes a turn through Queue.
type Queue struct {
	waiting       int
	runLock       sync.Mutex
	interruptLock sync.Mutex
}

type Unlocker func()

// Queue and wait for turn on the strip.
func (i *Queue) Queue() Unlocker {
	i.enqueue()
	i.runLock.Lock()

	i.running()
	return func() {
		i.done()
	}
}

func (i *Queue) running() {
	i.interruptLock.Lock()
	defer i.interruptLock.Unlock()

	i.waiting--
}

func (i *Queue) enqueue() {
	i.interruptLock.Lock()
	defer i.interruptLock.Unlock()

	i.waiting++
}

// Waiting reports how many are currently queued up behind the holder.
func (i *Queue) Waiting() int {
	i.interruptLock.Lock()
	defer i.interruptLock.Unlock()

	return i.waiting
}

func (i *Queue) done() {
	defer i.runLock.Unlock()

	if w := i.Waiting(); w < 0 {
		log.Warn(errors.New("number waiting in queue less than zero"))
	}
}
