package application

import "sync/atomic"

type LedState string

const (
	LedStateOn      LedState = "ON"
	LedStateOff     LedState = "OFF"
	LedStateUnknown LedState = "UNKNOWN"
)

// DeviceState is the last known condition of the physical device as reported
// on the status topic. It is replaced wholesale on every successful decode,
// never merged field by field.
type DeviceState struct {
	LedState     LedState `json:"led_state"`
	ManualMode   bool     `json:"manual_mode"`
	MotionActive bool     `json:"motion_active"`
	ToggleCount  uint64   `json:"toggle_count"`
	Uptime       float64  `json:"uptime"`
	IP           string   `json:"ip"`
}

// StateCache holds the single most recently decoded DeviceState.
// Updates are atomic swaps of the whole record; readers never observe a
// partially written value. Get returns nil until the first Set.
type StateCache struct {
	state atomic.Pointer[DeviceState]
}

func NewStateCache() *StateCache {
	return &StateCache{}
}

func (c *StateCache) Set(state DeviceState) {
	c.state.Store(&state)
}

func (c *StateCache) Get() *DeviceState {
	return c.state.Load()
}
