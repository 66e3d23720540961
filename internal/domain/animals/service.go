package animals

import (
	"context"
	"errors"
	"fmt"

	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
	"shelter-dashboard/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	store   Store
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:   store,
		log:     log.With(map[string]any{"component": "animals"}),
		metrics: m,
	}
}

// List devuelve los records que matchean q (incluye _id).
func (s *Service) List(ctx context.Context, q Query) ([]Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	out, err := s.store.Read(ctx, q)
	s.metrics.StoreOp("read", err)
	if err != nil {
		s.log.Error("store read failed", map[string]any{"err": err, "conditions": len(q.Conditions)})
		return nil, err
	}
	return out, nil
}

// Create inserta un record nuevo. Solo role admin.
// El _id que venga en el body se descarta: lo asigna el store.
func (s *Service) Create(ctx context.Context, session auth.Session, rec Record) (string, error) {
	if !session.IsAdmin() {
		s.log.Warn("create rejected", map[string]any{"user": session.UserID, "role": session.Role})
		return "", ErrUnauthorized
	}

	rec = rec.WithoutID()
	if len(rec) == 0 {
		return "", fmt.Errorf("%w: empty record", ErrInvalidInput)
	}

	id, err := s.store.Create(ctx, rec)
	s.metrics.StoreOp("create", err)
	if err != nil {
		s.log.Error("store create failed", map[string]any{"err": err})
		return "", err
	}

	s.log.Info("animal created", map[string]any{"id": id, "user": session.UserID})
	return id, nil
}
