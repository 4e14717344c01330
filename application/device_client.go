package application

import "context"

// LedStatus is the status document served by the device's own web server.
type LedStatus struct {
	LedState    bool   `json:"led_state"`
	ManualMode  bool   `json:"manual_mode"`
	ToggleCount uint64 `json:"toggle_count"`
	Uptime      int64  `json:"uptime"`
}

// SensorStatus is the motion sensor document from the device web server.
type SensorStatus struct {
	MotionActive bool `json:"motion_active"`
}

// DeviceWebClient talks HTTP directly to the device's embedded web server,
// bypassing the broker. Used by the polling endpoints.
type DeviceWebClient interface {
	Status(ctx context.Context) (*LedStatus, error)
	SensorStatus(ctx context.Context) (*SensorStatus, error)
	Toggle(ctx context.Context) (*LedStatus, error)
	SetLed(ctx context.Context, state bool) (*LedStatus, error)
	SetMode(ctx context.Context, mode string) (*LedStatus, error)
}
