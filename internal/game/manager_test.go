package game

import (
	"testing"

	"github.com/jonboulle/clockwork"
)

func newTestManager() *Manager {
	return NewManager(testConfig(), clockwork.NewRealClock(), &stubImages{deck: testDeck()}, &stubScores{})
}

func TestManagerCreateAndGet(t *testing.T) {
	m := newTestManager()

	s := m.Create(nil)
	if s.ID == "" {
		t.Fatal("session should get an id")
	}
	if s.Phase() != PhaseRegistering {
		t.Fatalf("new session should be Registering, got %s", s.Phase())
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatal("Get should return the same session")
	}
}

func TestManagerGetUnknown(t *testing.T) {
	m := newTestManager()
	if _, err := m.Get("nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := newTestManager()
	a := m.Create(nil)
	b := m.Create(nil)

	if a.ID == b.ID {
		t.Fatal("sessions must get distinct ids")
	}
	if m.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", m.Count())
	}
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)

	m.Remove(s.ID)
	if m.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", m.Count())
	}
	if _, err := m.Get(s.ID); err != ErrSessionNotFound {
		t.Fatalf("removed session should be gone, got %v", err)
	}
	// Removing again is a no-op.
	m.Remove(s.ID)
}
