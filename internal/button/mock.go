//go:build !pi

package button

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// InitButton simulates a button press for every SIGHUP the process gets.
func InitButton(_ string) (<-chan ButtonEvent, error) {
	log.Infoln("Initializing button handler, send SIGHUP to press")

	c := make(chan ButtonEvent, 5)
	go simulateButton(c)
	return c, nil
}

func simulateButton(c chan<- ButtonEvent) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)

	for {
		<-hupChan
		c <- ButtonEvent{
			Pressed: true,
		}
		c <- ButtonEvent{
			Pressed: false,
		}
	}
}
