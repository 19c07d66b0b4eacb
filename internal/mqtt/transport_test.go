package mqtt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/callebjorkell/ledstrip/internal/command"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenMock struct {
	err error
}

func (t tokenMock) Wait() bool                     { return true }
func (t tokenMock) WaitTimeout(time.Duration) bool { return true }
func (t tokenMock) Error() error                   { return t.err }
func (t tokenMock) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

type published struct {
	topic   string
	payload string
}

// ClientMock only implements what the transport uses.
type ClientMock struct {
	paho.Client

	lock       sync.Mutex
	open       bool
	published  []published
	subscribed string
	handler    paho.MessageHandler
	publishErr error
}

func (c *ClientMock) IsConnectionOpen() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.open
}

func (c *ClientMock) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.published = append(c.published, published{topic, payload.(string)})
	return tokenMock{err: c.publishErr}
}

func (c *ClientMock) Subscribe(topic string, _ byte, callback paho.MessageHandler) paho.Token {
	c.subscribed = topic
	c.handler = callback
	return tokenMock{}
}

func (c *ClientMock) Published() []published {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]published(nil), c.published...)
}

type ReceiverMock struct {
	channels []command.Channel
	payloads []string
}

func (r *ReceiverMock) Apply(channel command.Channel, payload string) {
	r.channels = append(r.channels, channel)
	r.payloads = append(r.payloads, payload)
}

func newTestTransport(conf Config) (*Transport, *ClientMock, *ReceiverMock) {
	receiver := &ReceiverMock{}
	client := &ClientMock{}
	t := &Transport{
		conf:     conf,
		client:   client,
		receiver: receiver,
		now:      time.Now,
	}
	return t, client, receiver
}

func TestHandle(t *testing.T) {
	tr, _, receiver := newTestTransport(Config{BaseTopic: "salon/strip"})

	tr.handle("salon/strip/hue", []byte("120"))
	tr.handle("salon/strip/on", []byte("rainbow"))
	tr.handle("salon/strip", []byte("disconnected"))
	tr.handle("kitchen/strip/hue", []byte("10"))

	assert.Equal(t, []command.Channel{command.Hue, command.Power}, receiver.channels)
	assert.Equal(t, []string{"120", "rainbow"}, receiver.payloads)
}

func TestHandleIntoMailbox(t *testing.T) {
	mailbox := command.NewMailbox()
	tr := &Transport{conf: Config{BaseTopic: "salon/strip"}, receiver: command.NewIntake(mailbox)}

	tr.handle("salon/strip/brightness", []byte("55"))
	p := mailbox.Take()
	assert.True(t, p.BrightnessSet)
	assert.Equal(t, 55.0, p.Brightness)
}

func TestOnConnect(t *testing.T) {
	tr, client, receiver := newTestTransport(Config{BaseTopic: "salon/strip", Name: "ledsSalon"})

	tr.onConnect(client)
	assert.Equal(t, "salon/strip/#", client.subscribed)
	assert.Eventually(t, func() bool { return len(client.Published()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, published{"online", "ledsSalon"}, client.Published()[0])

	require.NotNil(t, client.handler)
	client.handler(client, messageMock{topic: "salon/strip/saturation", payload: "20"})
	assert.Equal(t, []command.Channel{command.Saturation}, receiver.channels)
}

func TestPublishDebug(t *testing.T) {
	tr, client, _ := newTestTransport(Config{BaseTopic: "salon/strip", DebugTopic: "salon/debug"})

	tr.PublishDebug(0.5, 0.333)
	assert.Equal(t, []published{
		{"salon/debug/hue", "0.50"},
		{"salon/debug/sat", "0.33"},
	}, client.Published())

	tr, client, _ = newTestTransport(Config{BaseTopic: "salon/strip"})
	tr.PublishDebug(0.5, 0.5)
	assert.Empty(t, client.Published())
}

func TestSend(t *testing.T) {
	tr, client, _ := newTestTransport(Config{BaseTopic: "salon/strip"})

	require.NoError(t, tr.Send(command.Brightness, "40"))
	assert.Equal(t, []published{{"salon/strip/brightness", "40"}}, client.Published())

	client.publishErr = errors.New("not connected")
	assert.Error(t, tr.Send(command.Power, "true"))
}

func TestWatchdog(t *testing.T) {
	now := time.Date(2023, 1, 19, 12, 0, 0, 0, time.UTC)
	tr, client, _ := newTestTransport(Config{BaseTopic: "salon/strip", Timeout: time.Minute})
	tr.now = func() time.Time { return now }

	client.open = true
	require.NoError(t, tr.check())

	client.open = false
	now = now.Add(30 * time.Second)
	require.NoError(t, tr.check())

	now = now.Add(31 * time.Second)
	err := tr.check()
	assert.ErrorIs(t, err, ErrConnectionTimeout)

	client.open = true
	require.NoError(t, tr.check())
}

func TestWatchdogStops(t *testing.T) {
	tr, _, _ := newTestTransport(Config{Timeout: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, tr.Watchdog(ctx))
}

func TestClientID(t *testing.T) {
	assert.Regexp(t, `^esp8266SalonLeds-[0-9a-f]{1,4}$`, clientID("esp8266SalonLeds"))
	assert.Regexp(t, `^ledstrip-[0-9a-f]{1,4}$`, clientID(""))
}

type messageMock struct {
	paho.Message
	topic   string
	payload string
}

func (m messageMock) Topic() string   { return m.topic }
func (m messageMock) Payload() []byte { return []byte(m.payload) }

func TestOnConnectSendOnly(t *testing.T) {
	client := &ClientMock{}
	tr := &Transport{conf: Config{BaseTopic: "salon/strip"}, client: client, now: time.Now}

	tr.onConnect(client)
	assert.Empty(t, client.subscribed)
	assert.Empty(t, client.Published())
}
