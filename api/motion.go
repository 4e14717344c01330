package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lightbridge/application"
)

func (s *Server) handleMotionUpdate(w http.ResponseWriter, r *http.Request) {
	var report application.MotionReport
	if err := decodeBody(r, &report); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored := s.params.Motion.Update(report)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"received":     true,
		"motionActive": stored.MotionActive,
		"timestamp":    time.Now().UnixMilli(),
	})
}

func (s *Server) handleMotionLatest(w http.ResponseWriter, r *http.Request) {
	latest := s.params.Motion.Latest()
	if latest == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":      "no reports from device yet",
			"deviceId":     "unknown",
			"motionActive": false,
			"ledState":     false,
			"timestamp":    time.Now().UnixMilli(),
		})
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// handleMotionStream pushes motion reports to the client as server-sent
// events. The current report, if any, is sent immediately on connect.
func (s *Server) handleMotionStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	reports, cancel := s.params.Motion.Subscribe()
	defer cancel()

	if latest := s.params.Motion.Latest(); latest != nil {
		writeSSEEvent(w, *latest)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case report := <-reports:
			writeSSEEvent(w, report)
			flusher.Flush()
		}
	}
}

func writeSSEEvent(w http.ResponseWriter, report application.MotionReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
}
