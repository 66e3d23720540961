package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelter-dashboard/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("auth client not configured")
	ErrUnauthorized  = errors.New("auth unauthorized")
	ErrUpstream      = errors.New("auth upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Config del servicio de identidad. Viene de AUTH_BASE_URL / AUTH_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.apiKey != ""
}

// Claims es la respuesta del endpoint de verificación.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// VerifyToken valida el token contra el servicio de identidad y trae sus claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (Claims, error) {
	if !c.IsConfigured() {
		return Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrUnauthorized
	}

	headers := http.Header{}
	headers.Set(c.apiKeyHeader, c.apiKey)
	headers.Set("Authorization", "Bearer "+token)

	var out Claims
	err := c.http.PostJSON(ctx, verifyPath, headers, map[string]string{"token": token}, &out)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			return Claims{}, ErrUnauthorized
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return out, nil
}
