// Package client implements the remote store API client: cart operations
// scoped by device identity, the read-only catalog and order submission.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Uried/Nexora/internal/errs"
)

// IdentitySource resolves the device identity keying the remote cart.
// An empty string means no identity is available.
type IdentitySource interface {
	GetOrCreateDeviceID() string
}

// Config collects client dependencies.
type Config struct {
	BaseURL    string // e.g. http://localhost:8000/api; trailing slash ignored
	HTTPClient *http.Client
	Identity   IdentitySource
	Logger     *zap.Logger
}

// Client talks to the remote store API. All mutating cart calls return no
// cart state: callers re-fetch after a successful mutation.
type Client struct {
	base     string
	http     *http.Client
	identity IdentitySource
	logger   *zap.Logger
}

// New constructs a Client, applying defaults for the HTTP client and logger.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		http:     hc,
		identity: cfg.Identity,
		logger:   logger,
	}
}

// cartID resolves the current device identity or fails with ErrMissingIdentity.
func (c *Client) cartID() (string, error) {
	if c.identity == nil {
		return "", errs.ErrMissingIdentity
	}
	id := c.identity.GetOrCreateDeviceID()
	if id == "" {
		return "", errs.ErrMissingIdentity
	}
	return id, nil
}

// do sends one JSON request. Transport failures map to ErrNetwork.
func (c *Client) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNetwork, err)
	}
	return resp, nil
}

// rejection drains the response and builds a Rejection carrying the server's
// message verbatim: an {"error": ...} body, else the raw text body.
func rejection(resp *http.Response) *errs.Rejection {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	msg := strings.TrimSpace(string(body))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	return &errs.Rejection{Status: resp.StatusCode, Message: msg}
}

// decode reads a 2xx JSON body into out and closes the response.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// drain closes a response whose body is not needed.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
}

func is2xx(status int) bool { return status >= 200 && status < 300 }
