//go:build !pi

package lcd

import (
	log "github.com/sirupsen/logrus"
)

func InitLCD() error {
	log.Info("Starting the LCD")
	return nil
}

func PrintLine(l Line, msg string) {
	log.Infof("LCD %v: %q", l, fit(msg))
}

func Clear(l Line) {
	log.Debugf("LCD %v cleared", l)
}
