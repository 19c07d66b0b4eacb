package command

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Channel string

const (
	Saturation Channel = "saturation"
	Brightness Channel = "brightness"
	Hue        Channel = "hue"
	Power      Channel = "on"

	PowerOn      = "true"
	PowerRainbow = "rainbow"

	MaxBrightness = 100
	MaxSaturation = 100
	MaxHue        = 360
)

// Intake turns raw transport payloads into mailbox writes. It never fails: malformed input degrades to a
// default value or is dropped.
type Intake struct {
	mailbox *Mailbox
}

func NewIntake(m *Mailbox) *Intake {
	return &Intake{mailbox: m}
}

func (in *Intake) Apply(channel Channel, payload string) {
	switch channel {
	case Saturation:
		in.mailbox.SetSaturation(clamp(ParseNumber(payload), 0, MaxSaturation))
	case Brightness:
		value := ParseNumber(payload)
		if value > MaxBrightness {
			log.Debugf("Ignoring out of range brightness %v", value)
			return
		}
		value = clamp(value, 0, MaxBrightness)
		in.mailbox.SetBrightness(value)
		if value > 0 {
			in.mailbox.SetPower(true)
		}
	case Hue:
		in.mailbox.SetHue(clamp(ParseNumber(payload), 0, MaxHue))
	case Power:
		switch payload {
		case PowerOn:
			in.mailbox.SetPower(true)
		case PowerRainbow:
			in.mailbox.RequestRainbow()
		default:
			in.mailbox.SetPower(false)
		}
	default:
		log.Debugf("Ignoring command on unknown channel %q", channel)
	}
}

// ParseNumber parses the longest numeric prefix of the payload, ignoring leading whitespace. Anything that does
// not start with a number is 0.
func ParseNumber(payload string) float64 {
	s := strings.TrimLeft(payload, " \t\r\n")

	end := 0
	seenDigit, seenDot := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			return parsePrefix(s[:end], seenDigit)
		}
	}
	return parsePrefix(s[:end], seenDigit)
}

func parsePrefix(s string, seenDigit bool) float64 {
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
