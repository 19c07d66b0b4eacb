package command

import (
	"sync"
)

// Pending holds every command that arrived since the last tick. Each channel only keeps its latest value.
type Pending struct {
	Brightness    float64
	BrightnessSet bool
	Saturation    float64
	SaturationSet bool
	Hue           float64
	HueSet        bool
	// Power is nil when no on/off command arrived.
	Power   *bool
	Rainbow bool
}

// ColorSet reports if either half of the hue/saturation pair was updated.
func (p Pending) ColorSet() bool {
	return p.HueSet || p.SaturationSet
}

// Mailbox is written to by the transports and drained exactly once per tick by the control loop. A write
// overwrites any value that has not been taken yet.
type Mailbox struct {
	lock    sync.Mutex
	pending Pending
	// power remembers the last commanded state so that toggling does not depend on the control loop.
	power bool
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (m *Mailbox) SetBrightness(v float64) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pending.Brightness = v
	m.pending.BrightnessSet = true
}

func (m *Mailbox) SetSaturation(v float64) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pending.Saturation = v
	m.pending.SaturationSet = true
}

func (m *Mailbox) SetHue(v float64) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pending.Hue = v
	m.pending.HueSet = true
}

func (m *Mailbox) SetPower(on bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.setPower(on)
}

func (m *Mailbox) setPower(on bool) {
	m.power = on
	m.pending.Power = &on
}

// TogglePower flips the last commanded power state and returns the new state.
func (m *Mailbox) TogglePower() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.setPower(!m.power)
	return m.power
}

func (m *Mailbox) RequestRainbow() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pending.Rainbow = true
}

// Take returns everything pending and leaves the mailbox empty.
func (m *Mailbox) Take() Pending {
	m.lock.Lock()
	defer m.lock.Unlock()

	p := m.pending
	m.pending = Pending{}
	return p
}
