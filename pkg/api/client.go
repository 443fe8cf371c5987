package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/brainrot-academy/academy-client/pkg/httpclient"
	"github.com/brainrot-academy/academy-client/pkg/notify"
)

// FailureMessage is the user-facing text emitted for every failed call.
const FailureMessage = "Ошибка при обращении к серверу"

const maxErrorSnippet = 512

// Notifier is the part of notify.Emitter the client needs.
type Notifier interface {
	Notify(ctx context.Context, message string, severity notify.Severity) (notify.Notification, error)
}

// RequestOptions configures a single call. The zero value is a GET.
type RequestOptions struct {
	Method string
	// Headers are merged over the default Content-Type; caller keys win.
	Headers map[string]string
	// Body is sent as-is; callers serialize it themselves.
	Body []byte
}

// Client issues calls against the academy API.
type Client struct {
	http     httpclient.Client
	notifier Notifier
	log      Logger
}

// NewClient wires the request helper. A nil notifier keeps failures silent
// apart from the returned error; a nil log discards logs.
func NewClient(hc httpclient.Client, notifier Notifier, log Logger) *Client {
	if log == nil {
		log = noopLogger{}
	}
	return &Client{http: hc, notifier: notifier, log: log}
}

func defaultHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// Call performs one request against endpoint and returns the decoded JSON
// payload. Any failure is logged, reported once as a danger notification and
// returned; nothing is retried.
func (c *Client) Call(ctx context.Context, endpoint string, opts *RequestOptions) (any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	payload, err := c.do(ctx, method, endpoint, opts)
	if err != nil {
		c.fail(ctx, err)
		return nil, err
	}
	c.log.DebugObj("api call succeeded", "api_call", map[string]any{
		"method":   method,
		"endpoint": endpoint,
	})
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, opts *RequestOptions) (any, error) {
	reqErr := &RequestError{Method: method, Endpoint: endpoint}

	if strings.TrimSpace(endpoint) == "" {
		reqErr.Err = errors.New("endpoint is empty")
		return nil, reqErr
	}
	if c == nil || c.http == nil {
		reqErr.Err = errors.New("api client is not initialized")
		return nil, reqErr
	}

	headers := defaultHeaders()
	for k, v := range opts.Headers {
		headers[k] = v
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  method,
		URL:     endpoint,
		Headers: headers,
		Body:    opts.Body,
	})
	if err != nil {
		reqErr.Err = fmt.Errorf("http request: %w", err)
		return nil, reqErr
	}

	reqErr.StatusCode = resp.StatusCode()
	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		reqErr.Err = fmt.Errorf("http error: %s", readBodySnippet(body))
		return nil, reqErr
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		reqErr.Err = fmt.Errorf("decode response: %w", err)
		return nil, reqErr
	}
	return payload, nil
}

func (c *Client) fail(ctx context.Context, err error) {
	if c == nil {
		return
	}
	c.log.ErrorObj("api call failed", "api_error", map[string]any{
		"error": err.Error(),
	})
	if c.notifier == nil {
		return
	}
	// the notification is a side effect; its own failure must not mask err
	if _, nerr := c.notifier.Notify(ctx, FailureMessage, notify.SeverityDanger); nerr != nil {
		c.log.ErrorObj("failure notification not shown", "notify_error", map[string]any{
			"error": nerr.Error(),
		})
	}
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return "<empty>"
	}
	if len(body) > maxErrorSnippet {
		body = body[:maxErrorSnippet]
	}
	return strings.TrimSpace(string(body))
}
