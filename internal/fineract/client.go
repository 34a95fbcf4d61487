// Package fineract is the HTTP transport to an Apache Fineract backend. It
// injects the Basic auth credential and tenant header on every request and
// maps transport-level failures to a single error type so callers can
// distinguish them from validation failures.
package fineract

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mifos-community/mifosx-mcp/internal/config"
)

const (
	apiV1 = "/fineract-provider/api/v1"
	apiV2 = "/fineract-provider/api/v2"

	tenantHeader = "fineract-platform-tenantid"
)

// TransportError wraps any failure to obtain a successful response from the
// backend: connection errors, timeouts, and non-2xx statuses. Status is zero
// when no response was received.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fineract request failed: %v", e.Err)
	}
	return fmt.Sprintf("fineract returned status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is a thin wrapper over net/http bound to one backend instance and
// tenant.
type Client struct {
	baseURL    string
	basicToken string
	tenantID   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient builds a client from the backend configuration.
func NewClient(cfg config.FineractConfig, logger *logrus.Logger) *Client {
	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		basicToken: cfg.BasicToken,
		tenantID:   cfg.TenantID,
		httpClient: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: transport,
		},
		logger: logger,
	}
}

// Get performs a GET against a v1 API path (without the /fineract-provider
// prefix) and decodes the JSON response into out. A nil out discards the
// body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	raw, err := c.do(ctx, http.MethodGet, apiV1+path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decoding response from %s: %w", path, err)}
	}
	return nil
}

// Post sends a pre-serialized JSON body to a v1 API path and returns the raw
// response body. The body is passed through verbatim so the serialized form
// chosen by the caller reaches the wire unchanged.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body []byte) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, apiV1+path, query, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("Authorization", "Basic "+c.basicToken)
	req.Header.Set(tenantHeader, c.tenantID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Debug("Fineract request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Fineract request rejected")
		return nil, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
