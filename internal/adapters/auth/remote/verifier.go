package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shelter-dashboard/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.Verifier contra el servicio de identidad.
// Sin role en los claims, la sesión queda como "user".
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Session, error) {
	if v == nil || v.client == nil {
		return auth.Session{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Session{}, ErrTokenEmpty
	}

	c, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Session{}, fmt.Errorf("verify token: %w", err)
	}

	role := strings.ToLower(strings.TrimSpace(c.Role))
	if role == "" {
		role = auth.RoleUser
	}
	return auth.Session{
		UserID:   c.UserID,
		Username: strings.TrimSpace(c.Username),
		Role:     role,
	}, nil
}
