package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/beka-birhanu/pacmon-arena/remote"

	statePath  = "/game/state"
	updatePath = "/game/update"

	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client errors.
var (
	ErrEmptyBaseURL = errors.New("base url is empty")
)

// Config configures a Client.
type Config struct {
	BaseURL    string        // Service root, e.g. https://api.multisynq.io/v1.
	APIKey     string        // Sent as a bearer token when set.
	ChainID    int           // Sent in the X-Chain-ID header.
	Timeout    time.Duration // Per-request deadline.
	HTTPClient *http.Client  // Optional, defaults to a client with Timeout.
}

// Client talks to the remote sync service over HTTP with JSON bodies.
type Client struct {
	baseURL string
	apiKey  string
	chainID string
	timeout time.Duration
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient creates a sync client from c.
func NewClient(c *Config) (*Client, error) {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		return nil, ErrEmptyBaseURL
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		apiKey:  c.APIKey,
		chainID: strconv.Itoa(c.ChainID),
		timeout: timeout,
		http:    hc,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// GetGameState fetches the shared roster.
func (c *Client) GetGameState(ctx context.Context) Response {
	ctx, span := c.tracer.Start(ctx, "remote.GetGameState")
	defer span.End()

	resp := c.do(ctx, http.MethodGet, statePath, nil)
	c.finishSpan(span, resp)
	return resp
}

// UpdatePlayerState pushes the current player's state.
func (c *Client) UpdatePlayerState(ctx context.Context, p PlayerState) Response {
	ctx, span := c.tracer.Start(ctx, "remote.UpdatePlayerState",
		trace.WithAttributes(attribute.String("player.id", p.ID)))
	defer span.End()

	body, err := json.Marshal(updateRequest{Player: p})
	if err != nil {
		resp := Response{Err: fmt.Errorf("encoding player state: %w", err)}
		c.finishSpan(span, resp)
		return resp
	}

	resp := c.do(ctx, http.MethodPost, updatePath, body)
	if resp.Success && len(resp.Data) > 0 {
		var ur updateResponse
		if err := json.Unmarshal(resp.Data, &ur); err == nil {
			resp.Hash = ur.Hash
		}
	}
	c.finishSpan(span, resp)
	return resp
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) Response {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{Err: fmt.Errorf("building request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("X-Chain-ID", c.chainID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		return Response{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer func() {
		_ = res.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return Response{Err: fmt.Errorf("reading %s response: %w", path, err)}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Response{Err: fmt.Errorf("%s %s: status %d", method, path, res.StatusCode)}
	}
	if len(data) > 0 && !json.Valid(data) {
		return Response{Err: fmt.Errorf("%s response is not JSON", path)}
	}
	return Response{Success: true, Data: data}
}

func (c *Client) finishSpan(span trace.Span, resp Response) {
	span.SetAttributes(
		attribute.String("chain.id", c.chainID),
		attribute.Bool("sync.success", resp.Success),
	)
	if resp.Err != nil {
		span.RecordError(resp.Err)
		span.SetStatus(codes.Error, resp.Err.Error())
	}
}
