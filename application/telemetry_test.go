package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDeviceState_JSON(t *testing.T) {
	payload := []byte(`{"led_state":"ON","manual_mode":false,"motion_active":true,"toggle_count":42,"uptime":123.5,"ip":"192.168.1.50"}`)

	state, err := DecodeDeviceState(payload)
	require.NoError(t, err)

	assert.Equal(t, DeviceState{
		LedState:     LedStateOn,
		ManualMode:   false,
		MotionActive: true,
		ToggleCount:  42,
		Uptime:       123.5,
		IP:           "192.168.1.50",
	}, state)
}

func TestDecodeDeviceState_Legacy(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    DeviceState
	}{
		{
			name:    "on auto motion",
			payload: "ON_AUTO_MOTION",
			want:    DeviceState{LedState: LedStateOn, ManualMode: false, MotionActive: true},
		},
		{
			name:    "off manual",
			payload: "OFF_MANUAL",
			want:    DeviceState{LedState: LedStateOff, ManualMode: true},
		},
		{
			name:    "bare on",
			payload: "ON",
			want:    DeviceState{LedState: LedStateOn, ManualMode: true},
		},
		{
			name:    "lowercase with whitespace",
			payload: "  off_auto \n",
			want:    DeviceState{LedState: LedStateOff, ManualMode: false},
		},
		{
			// both substrings present: ON wins, matching the firmware
			name:    "on and off",
			payload: "ON_OFF",
			want:    DeviceState{LedState: LedStateOn, ManualMode: true},
		},
		{
			name:    "unrecognized text",
			payload: "REBOOTING",
			want:    DeviceState{LedState: LedStateUnknown, ManualMode: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := DecodeDeviceState([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}
}

func TestDecodeDeviceState_Empty(t *testing.T) {
	_, err := DecodeDeviceState(nil)
	require.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeDeviceState([]byte{})
	require.ErrorIs(t, err, ErrEmptyPayload)
}
