package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// El listado "All" devuelve el dataset completo.
	maxResponseBytes = 32 << 20
)

// Client habla JSON con un único servicio: el propio API (dashboard) o el
// servicio de identidad (auth remoto). Los paths son relativos a base.
type Client struct {
	http *http.Client
	base *url.URL
}

// New exige una base absoluta (scheme + host); un path en la base se respeta.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("httpclient: invalid base url %q", baseURL)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	base.RawQuery, base.Fragment = "", ""

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}, base: base}, nil
}

// StatusError es una respuesta no-2xx; Body va recortado.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// GetJSON pide path?params y decodifica la respuesta en out.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.endpoint(path, params), nil, nil, out)
}

// PostJSON manda in como JSON con headers extra (api key, bearer).
func (c *Client) PostJSON(ctx context.Context, path string, headers http.Header, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("httpclient: marshal json: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.endpoint(path, nil), headers, b, out)
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.base.JoinPath(path)
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, headers http.Header, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", target, err)
	}
	return nil
}
