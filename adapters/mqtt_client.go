package adapters

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"lightbridge/application"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	MQTTDefaultConnectTimeout  = 10 * time.Second
	MQTTDefaultPublishTimeout  = 5 * time.Second
	MQTTDefaultReconnectPeriod = 5 * time.Second
	MQTTDefaultKeepAlive       = 60 * time.Second
)

var (
	ErrMQTTNotConnected   = fmt.Errorf("not connected")
	ErrMQTTConnectTimeout = fmt.Errorf("connect timeout")
	ErrMQTTPublishTimeout = fmt.Errorf("publish timeout")
)

type MQTTClientParams struct {
	ClientID string
	Username string
	Password string
	MQTTUrl  string

	ConnectTimeout  time.Duration
	PublishTimeout  time.Duration
	ReconnectPeriod time.Duration

	NewClientFunc func(options *mqtt.ClientOptions) mqtt.Client

	Log zerolog.Logger
}

func (m *MQTTClientParams) EnsureDefaults() {
	if m.ConnectTimeout == 0 {
		m.ConnectTimeout = MQTTDefaultConnectTimeout
	}

	if m.PublishTimeout == 0 {
		m.PublishTimeout = MQTTDefaultPublishTimeout
	}

	if m.ReconnectPeriod == 0 {
		m.ReconnectPeriod = MQTTDefaultReconnectPeriod
	}

	if m.ClientID == "" {
		m.ClientID = fmt.Sprintf("lightbridge-%d", time.Now().UnixMilli())
	}

	if m.NewClientFunc == nil {
		m.NewClientFunc = mqtt.NewClient
	}
}

type subscription struct {
	topic   string
	qos     byte
	handler func(msg application.MQTTMessage)
}

// MQTTClient owns the single broker session. It tracks connectivity with
// atomic flags, guards Connect against concurrent attempts, and restores
// registered subscriptions on every reconnect.
type MQTTClient struct {
	params MQTTClientParams

	client mqtt.Client

	connected  uint64
	connecting atomic.Bool

	msgCount           uint64
	msgCountUpdateTime atomic.Pointer[time.Time]

	subMu         sync.RWMutex
	subscriptions map[string]subscription

	log zerolog.Logger
}

func NewMQTTClient(params MQTTClientParams) *MQTTClient {
	params.EnsureDefaults()

	m := &MQTTClient{
		params:        params,
		subscriptions: make(map[string]subscription),
		log:           params.Log,
	}
	m.client = m.newMqttClient()

	t := time.Unix(0, 0)
	m.msgCountUpdateTime.Store(&t)

	return m
}

// Connect opens the broker session. It is a no-op while an attempt is already
// in flight or a session is open, so concurrent callers produce exactly one
// transport connection attempt.
func (m *MQTTClient) Connect() error {
	if atomic.LoadUint64(&m.connected) == 1 {
		return nil
	}

	if !m.connecting.CompareAndSwap(false, true) {
		return nil
	}
	defer m.connecting.Store(false)

	tc := time.NewTimer(m.params.ConnectTimeout)
	defer tc.Stop()

	token := m.client.Connect()
	select {
	case <-tc.C:
		return ErrMQTTConnectTimeout
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	}

	atomic.StoreUint64(&m.connected, 1)
	return nil
}

func (m *MQTTClient) IsConnected() bool {
	return atomic.LoadUint64(&m.connected) == 1
}

func (m *MQTTClient) Status() application.ConnectionStatus {
	connected := m.IsConnected()
	return application.ConnectionStatus{
		Connected:         connected,
		Connecting:        !connected && m.connecting.Load(),
		ClientID:          m.params.ClientID,
		MessageCount:      atomic.LoadUint64(&m.msgCount),
		LastTimePublished: *m.msgCountUpdateTime.Load(),
	}
}

func (m *MQTTClient) Publish(topic string, qos byte, retained bool, msg any) error {
	if !m.IsConnected() {
		return ErrMQTTNotConnected
	}

	tc := time.NewTimer(m.params.PublishTimeout)
	defer tc.Stop()

	token := m.client.Publish(topic, qos, retained, msg)
	select {
	case <-tc.C:
		return ErrMQTTPublishTimeout
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	}

	t := time.Now()
	m.msgCountUpdateTime.Store(&t)
	atomic.AddUint64(&m.msgCount, 1)
	return nil
}

// Subscribe registers a handler for a topic. When the session is down the
// subscription is only recorded; it is applied as soon as a session opens and
// re-applied after every reconnect.
func (m *MQTTClient) Subscribe(topic string, qos byte, handler func(msg application.MQTTMessage)) error {
	m.subMu.Lock()
	m.subscriptions[topic] = subscription{topic: topic, qos: qos, handler: handler}
	m.subMu.Unlock()

	if !m.IsConnected() {
		return nil
	}

	token := m.client.Subscribe(topic, qos, func(client mqtt.Client, msg mqtt.Message) {
		handler(msg)
	})
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (m *MQTTClient) PublishHandler(client mqtt.Client, msg mqtt.Message) {
	// do nothing
}

func (m *MQTTClient) OnConnect(client mqtt.Client) {
	m.log.Info().Msg("connected")
	atomic.StoreUint64(&m.connected, 1)

	m.subMu.RLock()
	defer m.subMu.RUnlock()
	for _, sub := range m.subscriptions {
		handler := sub.handler
		client.Subscribe(sub.topic, sub.qos, func(client mqtt.Client, msg mqtt.Message) {
			handler(msg)
		})
	}
}

func (m *MQTTClient) OnConnectionLost(client mqtt.Client, err error) {
	m.log.Warn().Msgf("connection lost: %v", err)
	atomic.StoreUint64(&m.connected, 0)
}

func (m *MQTTClient) newMqttClient() mqtt.Client {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(m.params.MQTTUrl)
	opts.SetClientID(m.params.ClientID)
	opts.SetUsername(m.params.Username)
	opts.SetPassword(m.params.Password)

	opts.SetCleanSession(true)
	opts.SetKeepAlive(MQTTDefaultKeepAlive)
	opts.SetConnectTimeout(m.params.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(m.params.ReconnectPeriod)

	opts.SetDefaultPublishHandler(m.PublishHandler)
	opts.OnConnect = m.OnConnect
	opts.OnConnectionLost = m.OnConnectionLost

	return m.params.NewClientFunc(opts)
}

// NormalizeBrokerURL turns a bare host into a tcp:// URL with the given port.
// URLs that already carry a scheme are passed through untouched.
func NormalizeBrokerURL(url string, port int) string {
	if strings.Contains(url, "://") {
		return url
	}
	return fmt.Sprintf("tcp://%s:%d", url, port)
}

var _ application.MQTTClient = &MQTTClient{}
