package application

import (
	"encoding/json"
	"fmt"
	"strings"
)

var ErrEmptyPayload = fmt.Errorf("empty telemetry payload")

// DecodeDeviceState parses an inbound telemetry payload into a DeviceState.
//
// The device firmware speaks two encodings: a structured JSON document and a
// legacy underscore-delimited token stream ("ON_AUTO_MOTION"). The structured
// form is attempted first and returned verbatim; anything that is not valid
// JSON for the structured shape falls through to the legacy parser. Only an
// empty payload is an error.
func DecodeDeviceState(payload []byte) (DeviceState, error) {
	if len(payload) == 0 {
		return DeviceState{}, ErrEmptyPayload
	}

	var state DeviceState
	if err := json.Unmarshal(payload, &state); err == nil {
		return state, nil
	}

	return decodeLegacyStatus(string(payload)), nil
}

// decodeLegacyStatus parses the underscore-delimited text form.
//
// ON is checked before OFF; when both substrings appear the ON branch wins.
// This matches the device firmware's observed behaviour and must not be
// reordered without confirming against the firmware.
func decodeLegacyStatus(text string) DeviceState {
	text = strings.ToUpper(strings.TrimSpace(text))

	state := DeviceState{
		LedState:   LedStateUnknown,
		ManualMode: true,
	}

	if strings.Contains(text, "ON") {
		state.LedState = LedStateOn
	} else if strings.Contains(text, "OFF") {
		state.LedState = LedStateOff
	}

	for _, token := range strings.Split(text, "_") {
		switch token {
		case "AUTO":
			state.ManualMode = false
		case "MANUAL":
			state.ManualMode = true
		case "MOTION":
			state.MotionActive = true
		}
	}

	return state
}
