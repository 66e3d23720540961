package animals

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"shelter-dashboard/internal/ports/auth"
)

// -------------------------
// Test store (in-memory)
// -------------------------

type testStore struct {
	recs    []Record
	readErr error
}

func (s *testStore) Create(_ context.Context, rec Record) (string, error) {
	id := strconv.Itoa(len(s.recs) + 1)
	rec = rec.Clone()
	rec[FieldID] = id
	s.recs = append(s.recs, rec)
	return id, nil
}

func (s *testStore) Read(_ context.Context, q Query) ([]Record, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return Filter(s.recs, q)
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RequiresAdmin(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, nil, nil)

	_, err := svc.Create(context.Background(), auth.Session{UserID: "bob", Role: auth.RoleUser}, Record{FieldBreed: "Beagle"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(store.recs) != 0 {
		t.Fatalf("expected no write, got %d records", len(store.recs))
	}
}

func TestService_Create_StripsClientID(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, nil, nil)

	id, err := svc.Create(context.Background(), auth.Session{Role: auth.RoleAdmin}, Record{FieldID: "forged", FieldBreed: "Beagle"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "1" || store.recs[0].ID() != "1" {
		t.Fatalf("expected store-assigned id, got %q / %q", id, store.recs[0].ID())
	}

	if _, err := svc.Create(context.Background(), auth.Session{Role: auth.RoleAdmin}, Record{FieldID: "only-id"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty record, got %v", err)
	}
}

func TestService_List_ValidatesAndPropagates(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, nil, nil)

	if _, err := svc.List(context.Background(), NewQuery(In(FieldBreed))); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}

	store.readErr = ErrStoreUnavailable
	if _, err := svc.List(context.Background(), NewQuery()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
