package animals

import (
	"context"
	"errors"
)

var (
	// ErrStoreUnavailable envuelve fallas de conexión del backend.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store es el adapter de documentos. Create devuelve el id asignado por el store.
// Read valida la query (ErrInvalidQuery) antes de consultar.
type Store interface {
	Create(ctx context.Context, rec Record) (string, error)
	Read(ctx context.Context, q Query) ([]Record, error)
}
