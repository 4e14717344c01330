package application

import "time"

// ConnectionStatus reflects the broker transport health as tracked by the
// connection manager. Connecting and Connected are never both true.
type ConnectionStatus struct {
	Connected         bool
	Connecting        bool
	ClientID          string
	MessageCount      uint64
	LastTimePublished time.Time
}

// MQTTMessage is an inbound broker message.
type MQTTMessage interface {
	Topic() string
	Payload() []byte
}

// MQTTClient is the single broker session owned by the bridge. Connect is
// idempotent while a connection attempt is in flight or a session is open.
// Subscriptions registered before the session opens are applied on connect
// and restored after every reconnect.
type MQTTClient interface {
	Publish(topic string, qos byte, retained bool, msg any) error
	Subscribe(topic string, qos byte, handler func(msg MQTTMessage)) error

	Connect() error
	IsConnected() bool
	Status() ConnectionStatus
}

// Topics is the fixed mapping of logical channels to wire addresses.
// Defined once at startup and immutable for the process lifetime.
type Topics struct {
	Control    string
	Status     string
	Mode       string
	Brightness string
}

// DefaultTopics returns the topic set under the device's fixed namespace.
func DefaultTopics() Topics {
	return Topics{
		Control:    "home/light/control",
		Status:     "home/light/status",
		Mode:       "home/light/mode",
		Brightness: "home/light/brightness",
	}
}

// All lists every channel in subscription order.
func (t Topics) All() []string {
	return []string{t.Control, t.Status, t.Mode, t.Brightness}
}
