package control

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/callebjorkell/ledstrip/internal/command"
	"github.com/callebjorkell/ledstrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPeriod       = 50 * time.Millisecond
	DefaultFadeDuration = 2 * time.Second
	defaultBrightness   = 100
)

// Presenter pushes a complete frame to the strip.
type Presenter interface {
	Show(colors []pixel.Color) error
}

// Publisher receives the normalized hue and saturation whenever a new color is applied.
type Publisher interface {
	PublishDebug(hue, saturation float64)
}

type Options struct {
	LedCount         int
	Period           time.Duration
	FadeDuration     time.Duration
	ProportionalFade bool
	QuietHours       *QuietHours
}

// State is a snapshot of the controller, used for status displays.
type State struct {
	Phase      Phase
	Mode       Mode
	Level      float64
	Brightness uint8
	Hue        float64
	Saturation float64
	On         bool
	Quiet      bool
}

type Controller struct {
	opts      Options
	mailbox   *command.Mailbox
	presenter Presenter
	publisher Publisher

	// logical holds the undimmed animation state, device the frame that is sent to the strip.
	logical *pixel.Buffer
	device  *pixel.Buffer

	lock          sync.Mutex
	mode          Mode
	rainbowFilled bool
	fade          Fade
	on            bool
	quiet         bool
	brightness    uint8
	hue           float64
	saturation    float64
}

func NewController(opts Options, mailbox *command.Mailbox, presenter Presenter, publisher Publisher) *Controller {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = DefaultFadeDuration
	}

	return &Controller{
		opts:       opts,
		mailbox:    mailbox,
		presenter:  presenter,
		publisher:  publisher,
		logical:    pixel.NewBuffer(opts.LedCount),
		device:     pixel.NewBuffer(opts.LedCount),
		mode:       Rainbow,
		brightness: defaultBrightness,
	}
}

// Run ticks the controller until the context is cancelled.
func (c *Controller) Run(ctx context.Context) {
	log.Infof("Starting control loop with a %v period", c.opts.Period)
	t := time.NewTicker(c.opts.Period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Stopping control loop")
			return
		case <-t.C:
			if err := c.Tick(); err != nil {
				log.Warn("Unable to show frame: ", err)
			}
		}
	}
}

// Tick consumes pending commands, advances the animation and the fade, and presents one frame.
func (c *Controller) Tick() error {
	c.lock.Lock()
	c.applyCommands(c.mailbox.Take())
	c.animate()
	c.advanceFade()
	pixel.Dim(c.device, c.logical, c.fade.Level)
	c.lock.Unlock()

	return c.presenter.Show(c.device.Colors())
}

func (c *Controller) applyCommands(p command.Pending) {
	if p.BrightnessSet {
		c.brightness = uint8(p.Brightness)
		log.Debugf("Brightness set to %d", c.brightness)
	}
	if p.Power != nil && *p.Power != c.on {
		c.on = *p.Power
		log.Infof("Power switched %v", onOff(c.on))
	}

	if p.ColorSet() {
		if p.HueSet {
			c.hue = p.Hue
		}
		if p.SaturationSet {
			c.saturation = p.Saturation
		}
		hue := c.hue / command.MaxHue
		saturation := c.saturation / command.MaxSaturation
		log.Debugf("Filling with hue %.2f, saturation %.2f", hue, saturation)

		if c.publisher != nil {
			c.publisher.PublishDebug(hue, saturation)
		}
		pixel.Fill(c.logical, pixel.HSB(hue, saturation, 1))
		c.setMode(SolidColor)
		return
	}

	if p.Rainbow {
		c.setMode(Rainbow)
	}
}

func (c *Controller) setMode(m Mode) {
	if c.mode == m {
		return
	}
	log.Infof("Switching to %v mode", m)
	c.mode = m
	c.rainbowFilled = false
}

func (c *Controller) animate() {
	if c.mode != Rainbow {
		return
	}
	if !c.rainbowFilled {
		pixel.FillRainbow(c.logical)
		c.rainbowFilled = true
		return
	}
	pixel.Rotate(c.logical)
}

func (c *Controller) advanceFade() {
	quiet := c.opts.QuietHours.Active()
	if quiet != c.quiet {
		if quiet {
			log.Info("Quiet hours started, forcing the strip off")
			if !c.opts.QuietHours.Synced() {
				log.Warn("The clock has not been synchronized yet, quiet hours may be off")
			}
		} else {
			log.Info("Quiet hours ended")
		}
		c.quiet = quiet
	}
	if quiet {
		c.fade = Fade{Phase: OffSteady}
		return
	}

	target := float64(c.brightness)
	step := FadeStep(c.opts.FadeDuration, c.opts.Period, target, c.opts.ProportionalFade)

	prev := c.fade.Phase
	c.fade = c.fade.Next(c.on, target, step)
	if prev != c.fade.Phase {
		log.Debugf("Fade phase %v -> %v", prev, c.fade.Phase)
	}
}

func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()

	return State{
		Phase:      c.fade.Phase,
		Mode:       c.mode,
		Level:      c.fade.Level,
		Brightness: c.brightness,
		Hue:        c.hue,
		Saturation: c.saturation,
		On:         c.on,
		Quiet:      c.quiet,
	}
}

// Frame returns a copy of the undimmed animation buffer.
func (c *Controller) Frame() []pixel.Color {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]pixel.Color(nil), c.logical.Colors()...)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Lines formats the state for a 16x2 display.
func (s State) Lines() (string, string) {
	line1 := s.Phase.String()
	if s.Quiet {
		line1 += " (quiet)"
	}
	return line1, fmt.Sprintf("%s %d%%", s.Mode, s.Brightness)
}
