package wheel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/metrics"
	"iwannabeavolunteer/portal/internal/models/dtos"
)

const (
	providerName = "wheel"

	// PublicBaseURL is where created wheels are shared from
	PublicBaseURL = "https://wheelofnames.com/"
)

// APIError is a failed wheel creation. Status is the HTTP status to answer with, Details the
// provider's body (parsed JSON, or {"raw": text}). ProviderStatus is set only when the
// provider itself answered with an error.
type APIError struct {
	Status         int
	ProviderStatus int
	Message        string
	Details        any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wheel provider: %s (status %d)", e.Message, e.Status)
}

// Client calls the wheel-picker API
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	metrics *metrics.MetricsRegistry
}

func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.MetricsRegistry) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

// CreateWheel posts payload and returns the path of the new wheel
func (c *Client) CreateWheel(ctx context.Context, payload dtos.WheelPayload) (path string, err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal wheel payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v2/wheels", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create wheel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", constants.GetErrorMessage(constants.ErrCodeNetworkError), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read wheel response: %w", err)
	}
	data := decodeBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := constants.MsgWheelCreateFailed
		if obj, ok := data.(map[string]any); ok {
			if m, ok := obj["message"].(string); ok && m != "" {
				msg = m
			}
		}
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return "", &APIError{Status: status, ProviderStatus: resp.StatusCode, Message: msg, Details: data}
	}

	path = extractPath(data)
	if path == "" {
		return "", &APIError{Status: http.StatusBadRequest, Message: constants.MsgWheelNoPath, Details: data}
	}
	return path, nil
}

// decodeBody parses the response as JSON, falling back to {"raw": text}
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]any{"raw": string(raw)}
	}
	return data
}

// extractPath reads data.parsed.path or data.path, where data is the "data" envelope if present
func extractPath(data any) string {
	root, _ := data.(map[string]any)
	if root == nil {
		return ""
	}
	if inner, ok := root["data"]; ok && inner != nil {
		root, _ = inner.(map[string]any)
		if root == nil {
			return ""
		}
	}

	if parsed, ok := root["parsed"].(map[string]any); ok {
		if p := pathString(parsed["path"]); p != "" {
			return p
		}
	}
	return pathString(root["path"])
}

func pathString(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		if p == 0 {
			return ""
		}
		return fmt.Sprint(p)
	default:
		return ""
	}
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ProviderCallsTotal.WithLabelValues(providerName, "create_wheel", outcome).Inc()
	c.metrics.ProviderCallDuration.WithLabelValues(providerName, "create_wheel").Observe(time.Since(start).Seconds())
}
