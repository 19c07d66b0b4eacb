package mqtt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/callebjorkell/ledstrip/internal/command"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 120 * time.Second
	presenceTopic  = "online"
	willPayload    = "disconnected"
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
	watchInterval  = time.Second
)

var ErrConnectionTimeout = errors.New("broker connection lost for too long")

type Config struct {
	Broker       string
	User         string
	Password     string
	BaseTopic    string
	DebugTopic   string
	ClientPrefix string
	// Name is published as presence when connected.
	Name    string
	Timeout time.Duration
}

// Receiver gets every command addressed to the strip. A transport without a receiver only sends.
type Receiver interface {
	Apply(channel command.Channel, payload string)
}

type Transport struct {
	conf     Config
	client   paho.Client
	receiver Receiver
	now      func() time.Time

	lock          sync.Mutex
	lastConnected time.Time
}

func New(conf Config, receiver Receiver) *Transport {
	if conf.Timeout <= 0 {
		conf.Timeout = DefaultTimeout
	}
	t := &Transport{
		conf:     conf,
		receiver: receiver,
		now:      time.Now,
	}
	t.client = paho.NewClient(t.clientOptions())
	return t
}

func (t *Transport) clientOptions() *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(t.conf.Broker)
	opts.SetClientID(clientID(t.conf.ClientPrefix))
	opts.SetUsername(t.conf.User)
	opts.SetPassword(t.conf.Password)
	if t.receiver != nil {
		opts.SetWill(t.conf.BaseTopic, willPayload, 0, false)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetOnConnectHandler(t.onConnect)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warnf("Lost connection to %s: %v", t.conf.Broker, err)
	})
	return opts
}

func clientID(prefix string) string {
	if prefix == "" {
		prefix = "ledstrip"
	}
	return fmt.Sprintf("%s-%x", prefix, uuid.New().ID()&0xffff)
}

// Connect starts connecting to the broker. With connect retry enabled the client keeps trying in the
// background, so this only waits until the context is done or the first attempt finished.
func (t *Transport) Connect(ctx context.Context) error {
	t.markConnected()
	log.Infof("Connecting to %s", t.conf.Broker)

	token := t.client.Connect()
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(connectTimeout):
		log.Warnf("Still not connected to %s, retrying in the background", t.conf.Broker)
		return nil
	}
}

func (t *Transport) onConnect(c paho.Client) {
	log.Infof("Connected to %s", t.conf.Broker)
	t.markConnected()
	if t.receiver == nil {
		return
	}

	topic := t.conf.BaseTopic + "/#"
	token := c.Subscribe(topic, 0, func(_ paho.Client, m paho.Message) {
		t.handle(m.Topic(), m.Payload())
	})
	if token.WaitTimeout(connectTimeout) && token.Error() != nil {
		log.Warnf("Unable to subscribe to %s: %v", topic, token.Error())
	}

	t.publish(presenceTopic, t.conf.Name)
}

func (t *Transport) handle(topic string, payload []byte) {
	log.Debugf("Received %q on %s", payload, topic)

	channel := strings.TrimPrefix(topic, t.conf.BaseTopic+"/")
	if channel == topic || channel == "" {
		return
	}
	t.receiver.Apply(command.Channel(channel), string(payload))
}

// PublishDebug publishes the normalized hue and saturation of a newly applied color.
func (t *Transport) PublishDebug(hue, saturation float64) {
	if t.conf.DebugTopic == "" {
		return
	}
	t.publish(t.conf.DebugTopic+"/hue", fmt.Sprintf("%.2f", hue))
	t.publish(t.conf.DebugTopic+"/sat", fmt.Sprintf("%.2f", saturation))
}

// Send publishes a command to the strip listening on the base topic.
func (t *Transport) Send(channel command.Channel, payload string) error {
	topic := fmt.Sprintf("%s/%s", t.conf.BaseTopic, channel)
	token := t.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	return token.Error()
}

// publish does not wait for delivery, as it is called from the control loop.
func (t *Transport) publish(topic, payload string) {
	token := t.client.Publish(topic, 0, false, payload)
	go func() {
		if token.WaitTimeout(publishTimeout) && token.Error() != nil {
			log.Debugf("Unable to publish to %s: %v", topic, token.Error())
		}
	}()
}

func (t *Transport) markConnected() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.lastConnected = t.now()
}

func (t *Transport) disconnectedFor() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.now().Sub(t.lastConnected)
}

// Watchdog returns ErrConnectionTimeout when the broker connection has been down longer than the configured
// timeout. The caller is expected to restart the process.
func (t *Transport) Watchdog(ctx context.Context) error {
	tick := time.NewTicker(watchInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := t.check(); err != nil {
				return err
			}
		}
	}
}

func (t *Transport) check() error {
	if t.client.IsConnectionOpen() {
		t.markConnected()
		return nil
	}
	if d := t.disconnectedFor(); d > t.conf.Timeout {
		return fmt.Errorf("%w: %v without %s", ErrConnectionTimeout, d.Round(time.Second), t.conf.Broker)
	}
	return nil
}

func (t *Transport) Close() {
	log.Debug("Disconnecting from the broker")
	t.client.Disconnect(250)
}
