package api

import (
	"net/http"
	"testing"

	"lightbridge/application"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotionUpdateAndLatest(t *testing.T) {
	mBridge := &MockBridgeService{}
	motion := application.NewMotionService(zerolog.Nop())
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Motion: motion})

	rec, body := doRequest(t, handler, http.MethodPost, "/api/motion/update",
		`{"deviceId":"esp32-01","motionActive":true,"ledState":true,"timestamp":1700000000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "success", body["status"])
	assert.Equal(t, true, body["received"])
	assert.Equal(t, true, body["motionActive"])
	assert.NotZero(t, body["timestamp"])

	rec, body = doRequest(t, handler, http.MethodGet, "/api/motion/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "esp32-01", body["deviceId"])
	assert.Equal(t, true, body["motionActive"])
	assert.NotEmpty(t, body["receivedAt"])
}

func TestMotionLatest_NoReports(t *testing.T) {
	mBridge := &MockBridgeService{}
	motion := application.NewMotionService(zerolog.Nop())
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Motion: motion})

	rec, body := doRequest(t, handler, http.MethodGet, "/api/motion/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "unknown", body["deviceId"])
	assert.Equal(t, false, body["motionActive"])
	assert.NotEmpty(t, body["message"])
}

func TestMotionUpdate_MalformedBody(t *testing.T) {
	mBridge := &MockBridgeService{}
	motion := application.NewMotionService(zerolog.Nop())
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Motion: motion})

	rec, body := doRequest(t, handler, http.MethodPost, "/api/motion/update", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Nil(t, motion.Latest())
}
