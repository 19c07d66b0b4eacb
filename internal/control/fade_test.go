package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFadeStep(t *testing.T) {
	tt := []struct {
		name         string
		duration     time.Duration
		period       time.Duration
		target       float64
		proportional bool
		step         float64
	}{
		{"full scale", 2 * time.Second, 50 * time.Millisecond, 100, false, 6.375},
		{"full scale ignores target", 2 * time.Second, 50 * time.Millisecond, 20, false, 6.375},
		{"proportional", 2 * time.Second, 50 * time.Millisecond, 100, true, 2.5},
		{"proportional low target", 2 * time.Second, 50 * time.Millisecond, 20, true, 0.5},
		{"shorter than a tick", 10 * time.Millisecond, 50 * time.Millisecond, 100, false, 255},
		{"no duration", 0, 50 * time.Millisecond, 100, false, 255},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.step, FadeStep(tc.duration, tc.period, tc.target, tc.proportional), 1e-9)
		})
	}
}

func TestFadeUp(t *testing.T) {
	step := FadeStep(DefaultFadeDuration, DefaultPeriod, 100, false)
	f := Fade{}

	ticks := 0
	for f.Phase != OnSteady {
		f = f.Next(true, 100, step)
		ticks++
		assert.GreaterOrEqual(t, f.Level, 0.0)
		assert.LessOrEqual(t, f.Level, 100.0)
		if ticks > 40 {
			t.Fatal("fade did not finish in 40 ticks")
		}
	}

	assert.Equal(t, 16, ticks)
	assert.Equal(t, 100.0, f.Level)
}

func TestFadeDown(t *testing.T) {
	step := FadeStep(DefaultFadeDuration, DefaultPeriod, 60, false)
	f := Fade{Phase: OnSteady, Level: 60}

	f = f.Next(false, 60, step)
	assert.Equal(t, FadingDown, f.Phase)
	assert.InDelta(t, 60-step, f.Level, 1e-9)

	for i := 0; i < 40 && f.Phase != OffSteady; i++ {
		f = f.Next(false, 60, step)
		assert.GreaterOrEqual(t, f.Level, 0.0)
		assert.LessOrEqual(t, f.Level, 60.0)
	}
	assert.Equal(t, Fade{Phase: OffSteady, Level: 0}, f)
}

func TestFadeProportionalDuration(t *testing.T) {
	for _, target := range []float64{10, 50, 100} {
		step := FadeStep(DefaultFadeDuration, DefaultPeriod, target, true)
		f := Fade{}
		ticks := 0
		for f.Phase != OnSteady {
			f = f.Next(true, target, step)
			ticks++
		}
		assert.InDelta(t, 40, ticks, 1, "target %v", target)
	}
}

func TestBrightnessChangeWhileOn(t *testing.T) {
	f := Fade{Phase: OnSteady, Level: 100}
	f = f.Next(true, 30, 6.375)
	assert.Equal(t, Fade{Phase: OnSteady, Level: 30}, f)
}

func TestReversingFadeRestarts(t *testing.T) {
	f := Fade{Phase: FadingUp, Level: 40}
	f = f.Next(false, 100, 5)
	assert.Equal(t, Fade{Phase: FadingDown, Level: 95}, f)

	f = f.Next(true, 100, 5)
	assert.Equal(t, Fade{Phase: FadingUp, Level: 5}, f)
}

func TestFadeDownClampsToLoweredTarget(t *testing.T) {
	f := Fade{Phase: FadingDown, Level: 80}
	f = f.Next(false, 20, 5)
	assert.Equal(t, Fade{Phase: FadingDown, Level: 15}, f)
}

func TestOffStaysOff(t *testing.T) {
	f := Fade{}
	for i := 0; i < 5; i++ {
		f = f.Next(false, 100, 6.375)
	}
	assert.Equal(t, Fade{Phase: OffSteady, Level: 0}, f)
}

func TestZeroTarget(t *testing.T) {
	f := Fade{}.Next(true, 0, 0)
	assert.Equal(t, Fade{Phase: OnSteady, Level: 0}, f)

	f = f.Next(false, 0, 0)
	assert.Equal(t, Fade{Phase: OffSteady, Level: 0}, f)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "off", OffSteady.String())
	assert.Equal(t, "fading up", FadingUp.String())
	assert.Equal(t, "on", OnSteady.String())
	assert.Equal(t, "fading down", FadingDown.String())
	assert.Equal(t, "rainbow", Rainbow.String())
	assert.Equal(t, "solid", SolidColor.String())
}
