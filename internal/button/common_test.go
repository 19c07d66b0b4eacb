package button

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type TogglerMock struct {
	lock    sync.Mutex
	toggles int
}

func (m *TogglerMock) TogglePower() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.toggles++
	return m.toggles%2 == 1
}

func (m *TogglerMock) Toggles() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.toggles
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Button was pressed", ButtonEvent{Pressed: true}.String())
	assert.Equal(t, "Button was released", ButtonEvent{}.String())
}

func TestToggleOnPress(t *testing.T) {
	events := make(chan ButtonEvent)
	toggler := &TogglerMock{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		ToggleOnPress(ctx, events, toggler)
		close(done)
	}()

	events <- ButtonEvent{Pressed: true}
	events <- ButtonEvent{Pressed: false}
	events <- ButtonEvent{Pressed: true}
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop on a closed channel")
	}
	assert.Equal(t, 2, toggler.Toggles())
}
