package api

import (
	"errors"
	"net/http"
	"time"

	"lightbridge/application"
)

// handleDeviceStatus reports the last known device state. Before the first
// telemetry (or mock override) arrives the response is "pending"; building the
// response never touches the network.
func (s *Server) handleDeviceStatus(w http.ResponseWriter, r *http.Request) {
	status := s.params.Bridge.Status()
	if status.Device == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         "pending",
			"mqtt_connected": status.Connection.Connected,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"data":           status.Device,
		"mqtt_connected": status.Connection.Connected,
	})
}

func (s *Server) handleDeviceHealth(w http.ResponseWriter, r *http.Request) {
	status := s.params.Bridge.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                  "ok",
		"mqtt_connected":          status.Connection.Connected,
		"device_status_available": status.Device != nil,
		"timestamp":               time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTurnOn(w http.ResponseWriter, r *http.Request) {
	if err := s.params.Bridge.TurnOn(); err != nil {
		s.writeBridgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (s *Server) handleTurnOff(w http.ResponseWriter, r *http.Request) {
	if err := s.params.Bridge.TurnOff(); err != nil {
		s.writeBridgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := s.params.Bridge.Toggle(); err != nil {
		s.writeBridgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.params.Bridge.SetMode(body.Mode); err != nil {
		s.writeBridgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (s *Server) handleSetBrightness(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value *float64 `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value, err := s.params.Bridge.SetBrightness(body.Value)
	if err != nil {
		s.writeBridgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "value": value})
}

// handleMockState force-sets the cached device state, letting command logic
// be exercised without a live device on the broker.
func (s *Server) handleMockState(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LedState string `json:"led_state"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	led := application.LedState(body.LedState)
	if led != application.LedStateOn && led != application.LedStateOff {
		writeError(w, http.StatusBadRequest, "led_state must be ON or OFF")
		return
	}

	s.params.Bridge.SetMockState(led)
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// writeBridgeError maps bridge errors onto HTTP statuses. Toggle's
// unknown-state case is surfaced as a conflict rather than silently turned
// into an implicit turn-on; that fallback, if wanted, belongs to the caller.
func (s *Server) writeBridgeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidMode),
		errors.Is(err, application.ErrMissingBrightness):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrUnknownDeviceState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, application.ErrBridgeUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
