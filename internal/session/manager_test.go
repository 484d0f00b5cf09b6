package session

import (
	"errors"
	"testing"

	"lanewars/internal/battle"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(2, 60, battle.WithSeed(3))
	defer m.Close()

	a, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("Expected distinct session ids")
	}
	if _, err := m.Create(); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("Expected ErrTooManySessions, got %v", err)
	}

	got, err := m.Get(a.ID)
	if err != nil || got != a {
		t.Errorf("Get(%s) = %v, %v", a.ID, got, err)
	}
	if ids := m.List(); len(ids) != 2 {
		t.Errorf("Expected 2 ids, got %v", ids)
	}

	if err := m.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := m.Get(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after remove, got %v", err)
	}
	if err := m.Remove(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second remove, got %v", err)
	}
	if _, err := m.Create(); err != nil {
		t.Errorf("Expected room for a new session, got %v", err)
	}
}

func TestManagerCloseStopsAll(t *testing.T) {
	m := NewManager(4, 60)
	for i := 0; i < 3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	m.Close()
	if ids := m.List(); len(ids) != 0 {
		t.Errorf("Expected no sessions after Close, got %v", ids)
	}
}
