package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erazemk/stockroom/internal/model"
)

// DefaultBaseURL is the collection endpoint of the hosted inventory service.
const DefaultBaseURL = "https://prog2005.it.scu.edu.au/ArtGalley"

// DefaultTimeout bounds every request so a stalled call cannot leave a view
// loading forever.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client is a stateless wrapper over one remote inventory collection. Each
// call is a single request/response round trip with no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// Response is the acknowledgment returned by mutating calls.
type Response struct {
	Message string          `json:"message,omitempty"`
	Body    json.RawMessage `json:"-"`
}

// New returns a client for the collection at baseURL. A zero timeout uses
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewWithHTTPClient returns a client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches the full collection.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := c.do(ctx, "list", http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

// FindByName fetches the records matching name. An empty result is not an
// error.
func (c *Client) FindByName(ctx context.Context, name string) ([]model.Record, error) {
	var records []model.Record
	if err := c.do(ctx, "find", http.MethodGet, c.itemURL(name), nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

// Create submits a new record.
func (c *Client) Create(ctx context.Context, rec model.Record) (*Response, error) {
	return c.mutate(ctx, "create", http.MethodPost, c.baseURL, rec)
}

// Update replaces the record currently stored under name.
func (c *Client) Update(ctx context.Context, name string, rec model.Record) (*Response, error) {
	return c.mutate(ctx, "update", http.MethodPut, c.itemURL(name), rec)
}

// Delete removes the record stored under name.
func (c *Client) Delete(ctx context.Context, name string) (*Response, error) {
	return c.mutate(ctx, "delete", http.MethodDelete, c.itemURL(name), nil)
}

func (c *Client) itemURL(name string) string {
	return c.baseURL + "/" + url.PathEscape(name)
}

func (c *Client) mutate(ctx context.Context, op, method, target string, body any) (*Response, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, method, target, body, &raw); err != nil {
		return nil, err
	}

	resp := &Response{Body: raw}
	// Acknowledgments are free-form; only an object can carry a message.
	var ack struct {
		Message string `json:"message"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &ack) == nil {
		resp.Message = ack.Message
	}
	return resp, nil
}

// do sends one request and decodes a 2xx JSON body into out. Any network
// failure or non-2xx status becomes a *TransportError.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("inventory request failed", "op", op, "method", method, "url", target, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	slog.Debug("inventory request", "op", op, "method", method, "url", target,
		"status", resp.StatusCode, "duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &TransportError{Op: op, StatusCode: resp.StatusCode, Message: decodeServerMessage(data)}
		slog.Warn("inventory request rejected", "op", op, "status", resp.StatusCode, "message", terr.Message)
		return terr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
