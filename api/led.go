package api

import (
	"net/http"
	"time"

	"lightbridge/application"

	"golang.org/x/sync/errgroup"
)

// The /led routes poll the device's own web server directly, bypassing the
// broker. They exist for installations where the device is reachable on the
// local network.

func (s *Server) handleLedStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.params.Device.Status(r.Context())
	if err != nil {
		s.writeDeviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleLedSensorStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.params.Device.SensorStatus(r.Context())
	if err != nil {
		s.writeDeviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleLedFullStatus fans out to both device endpoints in parallel and
// composes the aggregate view.
func (s *Server) handleLedFullStatus(w http.ResponseWriter, r *http.Request) {
	var (
		status *application.LedStatus
		sensor *application.SensorStatus
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		status, err = s.params.Device.Status(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sensor, err = s.params.Device.SensorStatus(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeDeviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"led": map[string]any{
			"state": status.LedState,
		},
		"mode": map[string]any{
			"manual_mode": status.ManualMode,
		},
		"sensor": map[string]any{
			"motion_active": sensor.MotionActive,
		},
		"statistics": map[string]any{
			"toggle_count": status.ToggleCount,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLedToggle(w http.ResponseWriter, r *http.Request) {
	status, err := s.params.Device.Toggle(r.Context())
	if err != nil {
		s.writeDeviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleLedControl(w http.ResponseWriter, r *http.Request) {
	var body struct {
		State *bool `json:"state"`
	}
	if err := decodeBody(r, &body); err != nil || body.State == nil {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}

	status, err := s.params.Device.SetLed(r.Context(), *body.State)
	if err != nil {
		s.writeDeviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleLedMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Mode != application.ModeManual && body.Mode != application.ModeAuto {
		writeError(w, http.StatusBadRequest, "mode must be manual or auto")
		return
	}

	status, err := s.params.Device.SetMode(r.Context(), body.Mode)
	if err != nil {
		s.writeDeviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleLedPing probes device reachability; unreachable is a normal answer,
// not an error status.
func (s *Server) handleLedPing(w http.ResponseWriter, r *http.Request) {
	if _, err := s.params.Device.Status(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"connected": false,
			"message":   "device unreachable",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected": true,
		"message":   "device reachable",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeDeviceError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Warn().Err(err).Str("request_id", requestID(r)).Msg("device web request failed")
	writeError(w, http.StatusBadGateway, err.Error())
}
