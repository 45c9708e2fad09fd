package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nixlim/fuel-top/internal/analytics"
)

// Client issues JSON requests against the Fuel Tracker API. It never
// retries and sets no timeout of its own; callers bound requests through
// the context they pass in.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request sends body (if non-nil) as JSON and returns the raw JSON response.
// Non-2xx responses become *StatusError; transport failures *TransportError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug("api request",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := parseErrorMessage(data)
		if !ok {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: msg,
			Parsed:  ok,
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

func decodeInto[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	raw, err := c.Request(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return out, nil
}

func (c *Client) Vehicles(ctx context.Context) ([]Vehicle, error) {
	return decodeInto[[]Vehicle](ctx, c, http.MethodGet, "/vehicles", nil)
}

// FuelLogs returns the most recent fuel logs, newest first.
func (c *Client) FuelLogs(ctx context.Context, limit int) ([]FuelLog, error) {
	return decodeInto[[]FuelLog](ctx, c, http.MethodGet, "/fuel_logs?limit="+strconv.Itoa(limit), nil)
}

// Trips returns the most recent trips, newest first.
func (c *Client) Trips(ctx context.Context, limit int) ([]Trip, error) {
	return decodeInto[[]Trip](ctx, c, http.MethodGet, "/trips?limit="+strconv.Itoa(limit), nil)
}

// FuelConsumption returns monthly aggregates for period. A vehicleID of 0
// selects all vehicles.
func (c *Client) FuelConsumption(ctx context.Context, period analytics.Period, vehicleID int) ([]analytics.Record, error) {
	q := url.Values{}
	q.Set("period", string(period))
	if vehicleID != 0 {
		q.Set("vehicle_id", strconv.Itoa(vehicleID))
	}
	path := "/analytics/fuel_consumption?" + q.Encode()

	raw, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	records, err := analytics.DecodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding GET %s response: %w", path, err)
	}
	return records, nil
}

// Submit POSTs an already-coerced form payload to endpoint.
func (c *Client) Submit(ctx context.Context, endpoint string, payload map[string]any) error {
	_, err := c.Request(ctx, http.MethodPost, endpoint, payload)
	return err
}
