package state

import "testing"

func TestGetReturnsIdleForUnknownUser(t *testing.T) {
	m := NewMemoryManager()

	sess := m.Get(42)
	if sess.State != StateIdle {
		t.Fatalf("expected idle state, got %q", sess.State)
	}
	if m.HasState(42) {
		t.Fatal("unknown user must not report an active state")
	}
}

func TestSetStateAndInProgress(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("step_one"))
	if got := m.GetState(1); got != State("step_one") {
		t.Fatalf("GetState = %q, want step_one", got)
	}
	if !m.InProgress(1) {
		t.Fatal("user with non-idle state must be in progress")
	}

	m.Clear(1)
	if m.InProgress(1) {
		t.Fatal("Clear must reset to idle")
	}
}

func TestTempDataLifecycle(t *testing.T) {
	m := NewMemoryManager()

	m.SetTemp(7, "name", "Ann")
	v, ok := m.GetTemp(7, "name")
	if !ok || v.(string) != "Ann" {
		t.Fatalf("GetTemp = %v, %v; want Ann, true", v, ok)
	}

	m.SetTemp(7, "name", "Bob")
	if v, _ := m.GetTemp(7, "name"); v.(string) != "Bob" {
		t.Fatalf("SetTemp must overwrite, got %v", v)
	}

	if _, ok := m.GetTemp(7, "missing"); ok {
		t.Fatal("GetTemp must miss on unknown keys")
	}
}

func TestClearDropsSession(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(5, State("step_one"))
	m.SetTemp(5, "name", "Bob")
	m.Clear(5)

	if m.HasState(5) {
		t.Fatal("Clear must drop the whole session")
	}
	if _, ok := m.GetTemp(5, "name"); ok {
		t.Fatal("Clear must drop temp data")
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("step_one"))
	m.SetState(2, State("step_two"))

	if got := m.GetState(1); got != State("step_one") {
		t.Fatalf("user 1 state = %q, want step_one", got)
	}
	if got := m.GetState(2); got != State("step_two") {
		t.Fatalf("user 2 state = %q, want step_two", got)
	}
}
