package auth

import "context"

// Verifier verifica un bearer token y devuelve la sesión asociada.
type Verifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}
