package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	ModeManual = "manual"
	ModeAuto   = "auto"

	commandOn  = "ON"
	commandOff = "OFF"

	// commandQoS is the at-least-once delivery level used for every
	// subscription and command publish.
	commandQoS byte = 1
)

var (
	ErrBridgeUnavailable  = fmt.Errorf("mqtt bridge unavailable")
	ErrUnknownDeviceState = fmt.Errorf("device state unknown")
	ErrInvalidMode        = fmt.Errorf("invalid mode")
	ErrMissingBrightness  = fmt.Errorf("brightness value is required")
)

// BridgeStatus is the composite health view assembled for external callers.
// Building it never triggers network activity.
type BridgeStatus struct {
	Device     *DeviceState
	Connection ConnectionStatus
}

// BridgeService translates high-level light intents into broker publishes and
// keeps the last known device state from inbound telemetry.
type BridgeService interface {
	Run(ctx context.Context) error

	TurnOn() error
	TurnOff() error
	Toggle() error
	SetMode(mode string) error
	SetBrightness(value *float64) (float64, error)

	Status() BridgeStatus
	SetMockState(led LedState)
}

type BridgeServiceParams struct {
	MQTTClient MQTTClient
	Topics     Topics
	Cache      *StateCache

	Log zerolog.Logger
}

type bridgeService struct {
	params BridgeServiceParams

	mqtt   MQTTClient
	topics Topics
	cache  *StateCache

	log zerolog.Logger
}

func NewBridgeService(params BridgeServiceParams) (BridgeService, error) {
	if params.MQTTClient == nil {
		return nil, fmt.Errorf("MQTTClient is nil")
	}
	if params.Cache == nil {
		params.Cache = NewStateCache()
	}
	if params.Topics == (Topics{}) {
		params.Topics = DefaultTopics()
	}
	return &bridgeService{
		params: params,
		mqtt:   params.MQTTClient,
		topics: params.Topics,
		cache:  params.Cache,
		log:    params.Log,
	}, nil
}

// Run registers the telemetry subscription, opens the broker session and keeps
// a periodic connection report until the context is cancelled. Reconnection
// after transport loss is the connection manager's concern; Run only reacts to
// the messages it delivers.
func (b *bridgeService) Run(ctx context.Context) error {
	g := errgroup.Group{}

	g.Go(func() error {
		for _, topic := range b.topics.All() {
			if err := b.mqtt.Subscribe(topic, commandQoS, b.handleMessage); err != nil {
				return fmt.Errorf("subscribe %s: %w", topic, err)
			}
		}

		if err := b.mqtt.Connect(); err != nil {
			// The transport keeps retrying in the background; commands
			// surface ErrBridgeUnavailable until a session opens.
			b.log.Error().Err(err).Msg("initial broker connect failed")
		}

		<-ctx.Done()
		return nil
	})

	// connection report
	g.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

	ReporterLoop:
		for {
			select {
			case <-ctx.Done():
				break ReporterLoop
			case <-ticker.C:
				status := b.mqtt.Status()
				b.log.Info().
					Bool("is_connected", status.Connected).
					Uint64("msg_count", status.MessageCount).
					Time("last_time_published", status.LastTimePublished).
					Bool("device_state_known", b.cache.Get() != nil).
					Msg("bridge report")
			}
		}

		return nil
	})

	return g.Wait()
}

// handleMessage applies inbound telemetry to the state cache. A message that
// fails to decode is logged and dropped; the prior cached state is retained.
func (b *bridgeService) handleMessage(msg MQTTMessage) {
	if msg.Topic() != b.topics.Status {
		return
	}

	state, err := DecodeDeviceState(msg.Payload())
	if err != nil {
		b.log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping undecodable telemetry")
		return
	}

	b.cache.Set(state)
	b.log.Debug().Str("led_state", string(state.LedState)).Msg("device state updated")
}

func (b *bridgeService) TurnOn() error {
	return b.publishControl(commandOn)
}

func (b *bridgeService) TurnOff() error {
	return b.publishControl(commandOff)
}

// Toggle computes the inverse of the cached led state and publishes it. The
// cache is only updated by the next inbound telemetry message, so callers may
// observe stale state until the device reports back.
func (b *bridgeService) Toggle() error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	state := b.cache.Get()
	if state == nil {
		return ErrUnknownDeviceState
	}

	command := commandOn
	if state.LedState == LedStateOn {
		command = commandOff
	}

	if err := b.mqtt.Publish(b.topics.Control, commandQoS, false, command); err != nil {
		return err
	}

	b.log.Info().Str("command", command).Msg("toggle command published")
	return nil
}

func (b *bridgeService) SetMode(mode string) error {
	if mode != ModeManual && mode != ModeAuto {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if err := b.ensureConnected(); err != nil {
		return err
	}

	if err := b.mqtt.Publish(b.topics.Mode, commandQoS, false, mode); err != nil {
		return err
	}

	b.log.Info().Str("mode", mode).Msg("mode command published")
	return nil
}

// SetBrightness publishes the normalized numeric value and returns it once the
// broker acknowledges the publish.
func (b *bridgeService) SetBrightness(value *float64) (float64, error) {
	if value == nil {
		return 0, ErrMissingBrightness
	}

	if err := b.ensureConnected(); err != nil {
		return 0, err
	}

	payload := strconv.FormatFloat(*value, 'f', -1, 64)
	if err := b.mqtt.Publish(b.topics.Brightness, commandQoS, false, payload); err != nil {
		return 0, err
	}

	b.log.Info().Str("brightness", payload).Msg("brightness command published")
	return *value, nil
}

func (b *bridgeService) Status() BridgeStatus {
	return BridgeStatus{
		Device:     b.cache.Get(),
		Connection: b.mqtt.Status(),
	}
}

// SetMockState force-sets the cached state to a known value. Operator and
// test use only; lets command logic be exercised without a live device.
func (b *bridgeService) SetMockState(led LedState) {
	b.cache.Set(DeviceState{
		LedState:   led,
		ManualMode: true,
		Uptime:     float64(time.Now().Unix()),
		IP:         "127.0.0.1",
	})
	b.log.Info().Str("led_state", string(led)).Msg("mock device state set")
}

func (b *bridgeService) publishControl(command string) error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	if err := b.mqtt.Publish(b.topics.Control, commandQoS, false, command); err != nil {
		return err
	}

	b.log.Info().Str("command", command).Msg("control command published")
	return nil
}

// ensureConnected gates every outbound command. When the session is down a
// single reconnect attempt is made; if that does not yield a live session the
// command short-circuits without publishing.
func (b *bridgeService) ensureConnected() error {
	if b.mqtt.IsConnected() {
		return nil
	}

	b.log.Warn().Msg("broker session down, attempting reconnect")
	if err := b.mqtt.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeUnavailable, err)
	}
	if !b.mqtt.IsConnected() {
		return ErrBridgeUnavailable
	}
	return nil
}
