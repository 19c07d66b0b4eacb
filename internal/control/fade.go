package control

import (
	"time"
)

// fullScale is the range the firmware fade step was historically computed against.
const fullScale = 255.0

type Phase int

const (
	OffSteady Phase = iota
	FadingUp
	OnSteady
	FadingDown
)

func (p Phase) String() string {
	switch p {
	case OffSteady:
		return "off"
	case FadingUp:
		return "fading up"
	case OnSteady:
		return "on"
	case FadingDown:
		return "fading down"
	}
	return "N/A"
}

// Fade is the on/off brightness transition. Level is the brightness (0-100) the strip is rendered at.
type Fade struct {
	Phase Phase
	Level float64
}

// Next advances the fade by one tick towards on or off. target is the brightness the strip settles at when
// on, step the change in brightness per tick.
func (f Fade) Next(on bool, target, step float64) Fade {
	if on {
		switch f.Phase {
		case OffSteady, FadingDown:
			f = Fade{Phase: FadingUp, Level: 0}
		case OnSteady:
			// brightness changes while on are applied without fading.
			f.Level = target
			return f
		}

		f.Level += step
		if f.Level >= target {
			f = Fade{Phase: OnSteady, Level: target}
		}
		return f
	}

	switch f.Phase {
	case OnSteady, FadingUp:
		f = Fade{Phase: FadingDown, Level: target}
	case OffSteady:
		f.Level = 0
		return f
	}

	if f.Level > target {
		f.Level = target
	}
	f.Level -= step
	if f.Level <= 0 {
		f = Fade{Phase: OffSteady, Level: 0}
	}
	return f
}

// FadeStep calculates the brightness change per tick. By default the step is what a full 0-255 ramp needs to
// complete within duration, independent of target. With proportional set, the ramp to target takes duration.
func FadeStep(duration, period time.Duration, target float64, proportional bool) float64 {
	if period <= 0 || duration <= 0 {
		return fullScale
	}

	ticks := float64(duration) / float64(period)
	if ticks < 1 {
		ticks = 1
	}
	if proportional {
		return target / ticks
	}
	return fullScale / ticks
}
