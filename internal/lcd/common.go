package lcd

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type Line byte

func (l Line) String() string {
	switch l {
	case Line1:
		return "L1"
	case Line2:
		return "L2"
	}
	return "N/A"
}

const (
	registerSelectionPin = "GPIO4"
	clockEdgePin         = "GPIO17"
	data4Pin             = "GPIO25"
	data5Pin             = "GPIO22"
	data6Pin             = "GPIO23"
	data7Pin             = "GPIO24"

	Line1 Line = 0x80
	Line2 Line = 0xC0

	lineWidth   = 16
	character   = gpio.High
	command     = gpio.Low
	signalPulse = 500000 * time.Nanosecond
	signalDelay = 500000 * time.Nanosecond
)

var (
	registerSelection gpio.PinIO
	clockEdge         gpio.PinIO
	dataPins          [4]gpio.PinIO

	printer = PrintLine
	clearer = Clear
)

func Print(line1, line2 string) {
	PrintLine(Line1, line1)
	PrintLine(Line2, line2)
}

func ClearAll() {
	clearer(Line1)
	clearer(Line2)
}

// Follow prints whatever status returns every interval, but only touches the display when the text changed.
func Follow(ctx context.Context, interval time.Duration, status func() (string, string)) {
	t := time.NewTicker(interval)
	defer t.Stop()

	var last [2]string
	for {
		l1, l2 := status()
		if l1 != last[0] {
			printer(Line1, l1)
		}
		if l2 != last[1] {
			printer(Line2, l2)
		}
		last = [2]string{l1, l2}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func fit(msg string) string {
	if len(msg) > lineWidth {
		return msg[:lineWidth]
	}
	return msg
}
