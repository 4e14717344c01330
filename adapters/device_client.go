package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lightbridge/application"
)

const deviceRequestTimeout = 5 * time.Second

// DeviceWebClient talks to the web server running on the device itself.
// It implements the polling surface; broker traffic goes through MQTTClient.
type DeviceWebClient struct {
	baseURL string
	client  *http.Client
}

func NewDeviceWebClient(baseURL string) *DeviceWebClient {
	return &DeviceWebClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: deviceRequestTimeout},
	}
}

func (d *DeviceWebClient) Status(ctx context.Context) (*application.LedStatus, error) {
	var status application.LedStatus
	if err := d.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (d *DeviceWebClient) SensorStatus(ctx context.Context) (*application.SensorStatus, error) {
	var status application.SensorStatus
	if err := d.do(ctx, http.MethodGet, "/sensor/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (d *DeviceWebClient) Toggle(ctx context.Context) (*application.LedStatus, error) {
	var status application.LedStatus
	if err := d.do(ctx, http.MethodPost, "/toggle", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (d *DeviceWebClient) SetLed(ctx context.Context, state bool) (*application.LedStatus, error) {
	var status application.LedStatus
	body := map[string]bool{"state": state}
	if err := d.do(ctx, http.MethodPost, "/led", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (d *DeviceWebClient) SetMode(ctx context.Context, mode string) (*application.LedStatus, error) {
	var status application.LedStatus
	body := map[string]string{"mode": mode}
	if err := d.do(ctx, http.MethodPost, "/mode", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (d *DeviceWebClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building device request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("device returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding device response: %w", err)
	}
	return nil
}

var _ application.DeviceWebClient = &DeviceWebClient{}
