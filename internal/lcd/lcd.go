//go:build pi

package lcd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// InitLCD initializes all the LCD pins
func InitLCD() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("unable to initialize periph: %w", err)
	}

	log.Infoln("Initializing LCD")
	registerSelection = gpioreg.ByName(registerSelectionPin)
	clockEdge = gpioreg.ByName(clockEdgePin)
	dataPins[0] = gpioreg.ByName(data4Pin)
	dataPins[1] = gpioreg.ByName(data5Pin)
	dataPins[2] = gpioreg.ByName(data6Pin)
	dataPins[3] = gpioreg.ByName(data7Pin)

	for _, p := range append([]gpio.PinIO{registerSelection, clockEdge}, dataPins[:]...) {
		if p == nil {
			return fmt.Errorf("LCD pin is not available")
		}
	}

	sendByte(0x33, command)
	sendByte(0x32, command)
	sendByte(0x28, command)
	sendByte(0x0C, command)
	sendByte(0x06, command)
	sendByte(0x01, command)
	return nil
}

func sendByte(bits byte, mode gpio.Level) {
	registerSelection.Out(mode)
	pulseByte(bits, 0x10)
	pulseByte(bits, 0x01)
}

func pulseByte(bits, mask byte) {
	for i, pin := range dataPins {
		pin.Out(gpio.Low)
		if bits&(mask<<uint(i)) != 0 {
			pin.Out(gpio.High)
		}
	}
	time.Sleep(signalDelay)
	clockEdge.Out(gpio.High)
	time.Sleep(signalPulse)
	clockEdge.Out(gpio.Low)
	time.Sleep(signalDelay)
}

func PrintLine(l Line, msg string) {
	sendByte(byte(l), command)
	m := fmt.Sprintf("%-16s", fit(msg))
	for i := 0; i < lineWidth; i++ {
		sendByte(m[i], character)
	}
}

func Clear(l Line) {
	PrintLine(l, "")
}
