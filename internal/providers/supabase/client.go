package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/metrics"
)

const providerName = "supabase"

// Options configures a Client
type Options struct {
	BaseURL        string
	ServiceRoleKey string
	Timeout        time.Duration
	HTTPClient     *http.Client
	Metrics        *metrics.MetricsRegistry
}

// Client talks to the auth API (/auth/v1) and the table API (/rest/v1) of the provider.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	metrics    *metrics.MetricsRegistry
}

// New creates a provider client
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		serviceKey: opts.ServiceRoleKey,
		httpClient: httpClient,
		metrics:    opts.Metrics,
	}
}

var (
	sharedOnce   sync.Once
	sharedClient *Client
)

// Shared returns the process-wide client, constructing it on first use. Later calls
// ignore opts and return the same immutable instance.
func Shared(opts Options) *Client {
	sharedOnce.Do(func() {
		sharedClient = New(opts)
	})
	return sharedClient
}

// request describes one HTTP call to the provider
type request struct {
	operation string
	method    string
	path      string
	bearer    string
	body      any
	headers   map[string]string
}

// do executes req, decodes a 2xx JSON body into result (when non-nil) and converts
// everything else into a *ProviderError.
func (c *Client) do(ctx context.Context, req request, result any) (err error) {
	start := time.Now()
	defer func() { c.observe(req.operation, start, err) }()

	var bodyReader io.Reader
	if req.body != nil {
		payload, marshalErr := json.Marshal(req.body)
		if marshalErr != nil {
			return &ProviderError{
				Code:    constants.ErrCodeBadRequest,
				Message: "Failed to marshal request body",
				Err:     marshalErr,
			}
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	bearer := req.bearer
	if bearer == "" {
		bearer = c.serviceKey
	}
	httpReq.Header.Set("apikey", c.serviceKey)
	httpReq.Header.Set("Authorization", constants.BearerPrefix+bearer)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{
			Status:  resp.StatusCode,
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return buildHTTPError(resp.StatusCode, req.operation, bodyBytes)
	}

	if result == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &ProviderError{
			Status:  resp.StatusCode,
			Code:    constants.ErrCodeDecodeFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeDecodeFailed),
			Details: string(bodyBytes),
			Err:     err,
		}
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ProviderCallsTotal.WithLabelValues(providerName, operation, outcome).Inc()
	c.metrics.ProviderCallDuration.WithLabelValues(providerName, operation).Observe(time.Since(start).Seconds())
}
