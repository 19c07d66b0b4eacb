package button

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type ButtonEvent struct {
	Pressed bool
}

func (b ButtonEvent) String() string {
	action := "pressed"
	if !b.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Button was %v", action)
}

type PowerToggler interface {
	TogglePower() bool
}

// ToggleOnPress flips the strip power on every press until the context is done.
func ToggleOnPress(ctx context.Context, events <-chan ButtonEvent, toggler PowerToggler) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			log.Debugf("Event: %v", e)
			if e.Pressed {
				on := toggler.TogglePower()
				log.Infof("Button toggled the strip, now on: %v", on)
			}
		}
	}
}
