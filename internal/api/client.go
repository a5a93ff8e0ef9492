// Package api implements the remote call gateway: every mutating or
// data-fetching operation against the OpenMapGenerator backend goes through
// Client.Invoke.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Geb0/OpenMapGenerator/internal/util"
)

// Operation selects a backend action. Keyed operations address a specific
// entity by appending the route key to the URL.
type Operation string

const (
	OpGetMessages     Operation = "getMessages"
	OpMapUpdate       Operation = "mapUpdate"
	OpMapCenterUpdate Operation = "mapCenterUpdate"
	OpLocationCreate  Operation = "locationCreate"
	OpLocationUpdate  Operation = "locationUpdate"
	OpLocationDelete  Operation = "locationDelete"
)

// NoKey marks an operation that addresses no specific entity.
const NoKey = 0

// Response carries the transport status and the parsed response body of a
// completed call. Body is nil on transport or parse failure.
type Response struct {
	Status int
	Body   map[string]any
}

// OK reports transport-level success: a 2xx status with a parseable body.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300 && r.Body != nil
}

// Result reports application-level success, independent of transport status.
func (r Response) Result() bool {
	v, _ := r.Body["result"].(bool)
	return v
}

// NewID returns the server-assigned identifier of a create response, or 0
// when absent.
func (r Response) NewID() int {
	if v, ok := r.Body["newId"].(float64); ok {
		return int(v)
	}
	return 0
}

// String returns a string field from the response body.
func (r Response) String(key string) string {
	v, _ := r.Body[key].(string)
	return v
}

// Logger is the minimal logging interface the gateway needs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures a Client.
type Option func(*Client)

// WithScheduler routes completion callbacks through fn, typically the
// event loop's Post, so completions run on the same thread of control as
// user gestures. Without it the callback runs on the request goroutine.
func WithScheduler(fn func(name string, task func())) Option {
	return func(c *Client) {
		c.schedule = fn
	}
}

// WithObserver registers a hook invoked after every completion with the
// operation, its wall-clock duration, and transport success. Used for
// metrics reporting.
func WithObserver(fn func(op Operation, d time.Duration, ok bool)) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// Client issues asynchronous form-POST calls to the backend's ajax routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	schedule   func(name string, task func())
	observe    func(op Operation, d time.Duration, ok bool)
	logger     Logger
}

// New creates a gateway client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client-side timeout: a call runs to completion and its
		// outcome is always delivered, however late.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke issues one asynchronous operation and delivers exactly one
// completion to done. It never blocks the caller. There is no retry and no
// cancellation: once issued, the call runs to completion and done receives
// the outcome even if the caller has since lost interest.
//
// Every string payload value is quote-filtered and newline-collapsed before
// transmission. routeKey, when not NoKey, is appended to the operation URL.
func (c *Client) Invoke(op Operation, routeKey int, payload map[string]string, done func(Response)) {
	body, contentType, err := encodeForm(payload)
	if err != nil {
		// Encoding a flat string map into multipart cannot realistically
		// fail, but the exactly-once contract still holds.
		c.complete(op, time.Now(), done, Response{})
		return
	}

	url := c.operationURL(op, routeKey)
	start := time.Now()

	go func() {
		resp := c.do(url, contentType, body)
		c.complete(op, start, done, resp)
	}()
}

func (c *Client) operationURL(op Operation, routeKey int) string {
	url := fmt.Sprintf("%s/ajax/%s", c.baseURL, op)
	if routeKey != NoKey {
		url = fmt.Sprintf("%s/%d", url, routeKey)
	}
	return url
}

func (c *Client) do(url, contentType string, body []byte) Response {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("request failed", "url", url, "error", err)
		}
		return Response{}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{Status: httpResp.StatusCode}
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Response{Status: httpResp.StatusCode}
	}
	return Response{Status: httpResp.StatusCode, Body: parsed}
}

func (c *Client) complete(op Operation, start time.Time, done func(Response), resp Response) {
	if c.observe != nil {
		c.observe(op, time.Since(start), resp.OK())
	}
	if c.logger != nil {
		c.logger.Debug("operation complete", "op", string(op), "status", resp.Status, "parsed", resp.Body != nil)
	}
	if done == nil {
		return
	}
	if c.schedule != nil {
		c.schedule(string(op), func() { done(resp) })
		return
	}
	done(resp)
}

// encodeForm builds a multipart form body from the payload, applying the
// transport escaping to each value.
func encodeForm(payload map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range payload {
		filtered := util.CollapseNewlines(util.QuoteFilter(value))
		if err := w.WriteField(key, filtered); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
