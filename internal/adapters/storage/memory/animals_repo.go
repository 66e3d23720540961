package memory

import (
	"context"
	"sync"

	"shelter-dashboard/internal/domain/animals"

	"github.com/google/uuid"
)

// animalsRepo guarda documentos en orden de inserción.
type animalsRepo struct {
	mu   sync.RWMutex
	docs []animals.Record
}

func NewAnimalsRepo() animals.Store {
	return &animalsRepo{}
}

func (r *animalsRepo) Create(ctx context.Context, rec animals.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := rec.WithoutID()
	id := uuid.NewString()
	doc[animals.FieldID] = id

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, doc)
	return id, nil
}

func (r *animalsRepo) Read(ctx context.Context, q animals.Query) ([]animals.Record, error) {
	match, err := q.Matcher()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Record, 0)
	for _, d := range r.docs {
		if match(d) {
			// copia: el caller no puede mutar lo guardado
			out = append(out, d.Clone())
		}
	}
	return out, nil
}
