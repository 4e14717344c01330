package application

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MotionReport is a push report from the device's motion sensor, delivered
// over HTTP rather than the broker.
type MotionReport struct {
	DeviceID       string `json:"deviceId"`
	MotionActive   bool   `json:"motionActive"`
	LedState       bool   `json:"ledState"`
	ManualMode     bool   `json:"manualMode"`
	Timestamp      int64  `json:"timestamp"`
	MotionPinState int    `json:"motionPinState"`
	WifiConnected  bool   `json:"wifiConnected"`
	RSSI           *int   `json:"rssi,omitempty"`
	ReceivedAt     string `json:"receivedAt,omitempty"`
	ServerTime     int64  `json:"serverTime,omitempty"`
}

// MotionService keeps the latest motion report and fans it out to stream
// subscribers. Only the latest report is retained.
type MotionService struct {
	mu          sync.RWMutex
	latest      *MotionReport
	subscribers map[chan MotionReport]struct{}

	log zerolog.Logger
}

func NewMotionService(log zerolog.Logger) *MotionService {
	return &MotionService{
		subscribers: make(map[chan MotionReport]struct{}),
		log:         log,
	}
}

// Update stamps and stores the report, then broadcasts it. Slow subscribers
// are skipped rather than blocking the device's report path.
func (m *MotionService) Update(report MotionReport) MotionReport {
	now := time.Now()
	report.ReceivedAt = now.UTC().Format(time.RFC3339)
	report.ServerTime = now.UnixMilli()

	m.mu.Lock()
	m.latest = &report
	for sub := range m.subscribers {
		select {
		case sub <- report:
		default:
		}
	}
	m.mu.Unlock()

	m.log.Debug().
		Str("device_id", report.DeviceID).
		Bool("motion_active", report.MotionActive).
		Msg("motion report received")

	return report
}

// Latest returns the most recent report, or nil if none arrived yet.
func (m *MotionService) Latest() *MotionReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Subscribe registers a stream subscriber. The returned cancel func must be
// called when the subscriber goes away.
func (m *MotionService) Subscribe() (<-chan MotionReport, func()) {
	ch := make(chan MotionReport, 8)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		delete(m.subscribers, ch)
		m.mu.Unlock()
	}
	return ch, cancel
}
